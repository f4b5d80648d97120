package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/leave"
	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

// LeaveRepository implements leave.Repository using GORM
type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.Repository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	if err := r.db.WithContext(ctx).Create(lr).Error; err != nil {
		return internal.NewDependencyError("failed to create leave request", err)
	}
	return nil
}

func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&lr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("leave request not found", internal.ErrCodeLeaveNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch leave request", err)
	}
	return &lr, nil
}

func (r *LeaveRepository) List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter, filter leave.ListLeavesFilter) ([]*leave.LeaveRequest, error) {
	var leaves []*leave.LeaveRequest
	query := scope.Apply(r.db.WithContext(ctx), "hospital_id")
	query = rel.Apply(query)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	err := query.Where("is_active = ?", true).Order("created_at DESC").Find(&leaves).Error
	if err != nil {
		return nil, internal.NewDependencyError("failed to list leave requests", err)
	}
	return leaves, nil
}

// UpdateStatus is conditional on the row still being pending so that two
// concurrent transitions cannot both win.
func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, decision workflow.Decision) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&leave.LeaveRequest{}).
		Where("id = ? AND status = ?", id, workflow.StatusPending).
		Updates(map[string]interface{}{
			"status":      decision.Status,
			"reviewed_by": decision.ReviewedBy,
			"reviewed_at": decision.ReviewedAt,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, internal.NewDependencyError("failed to update leave request status", result.Error)
	}
	return result.RowsAffected > 0, nil
}
