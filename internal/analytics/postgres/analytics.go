package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/analytics"
)

// AnalyticsRepository implements analytics.Repository using GORM. All
// counts are active-only to match the list endpoints.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) analytics.Repository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) count(ctx context.Context, table string, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error) {
	query := r.db.WithContext(ctx).Table(table).Where("is_active = ?", true)
	query = scope.Apply(query, "hospital_id")
	query = rel.Apply(query)

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, internal.NewDependencyError("failed to count "+table, err)
	}
	return n, nil
}

func (r *AnalyticsRepository) CountPatients(ctx context.Context, scope accesscontrol.Scope) (int64, error) {
	return r.count(ctx, "patients", scope, accesscontrol.RelationFilter{})
}

func (r *AnalyticsRepository) CountShifts(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error) {
	return r.count(ctx, "shifts", scope, rel)
}

func (r *AnalyticsRepository) CountLeaves(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error) {
	return r.count(ctx, "leave_requests", scope, rel)
}

func (r *AnalyticsRepository) CountTasks(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error) {
	return r.count(ctx, "tasks", scope, rel)
}

// CountSwaps joins through shifts because swap rows carry no hospital_id.
func (r *AnalyticsRepository) CountSwaps(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error) {
	query := r.db.WithContext(ctx).
		Table("swap_requests").
		Joins("JOIN shifts ON shifts.id = swap_requests.shift_id").
		Where("swap_requests.is_active = ?", true)
	query = scope.Apply(query, "shifts.hospital_id")
	query = rel.Apply(query)

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return 0, internal.NewDependencyError("failed to count swap_requests", err)
	}
	return n, nil
}

func (r *AnalyticsRepository) CountHandovers(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error) {
	return r.count(ctx, "handovers", scope, rel)
}

type bucketRow struct {
	Bucket string
	N      int64
}

func (r *AnalyticsRepository) taskBreakdown(ctx context.Context, column string, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (map[string]int64, error) {
	query := r.db.WithContext(ctx).
		Table("tasks").
		Select(column + " AS bucket, COUNT(*) AS n").
		Where("is_active = ?", true).
		Group(column)
	query = scope.Apply(query, "hospital_id")
	query = rel.Apply(query)

	var rows []bucketRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, internal.NewDependencyError("failed to break down tasks by "+column, err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.N
	}
	return out, nil
}

func (r *AnalyticsRepository) TasksByStatus(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (map[string]int64, error) {
	return r.taskBreakdown(ctx, "status", scope, rel)
}

func (r *AnalyticsRepository) TasksByPriority(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (map[string]int64, error) {
	return r.taskBreakdown(ctx, "priority", scope, rel)
}
