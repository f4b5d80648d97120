package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/swap"
	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

// SwapRepository implements swap.Repository using GORM. List queries join
// through shifts because the swap's tenant lives on the shift row.
type SwapRepository struct {
	db *gorm.DB
}

func NewSwapRepository(db *gorm.DB) swap.Repository {
	return &SwapRepository{db: db}
}

func (r *SwapRepository) Create(ctx context.Context, sr *swap.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(sr).Error; err != nil {
		return internal.NewDependencyError("failed to create swap request", err)
	}
	return nil
}

func (r *SwapRepository) GetByID(ctx context.Context, id string) (*swap.SwapRequest, error) {
	var sr swap.SwapRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("swap request not found", internal.ErrCodeSwapNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch swap request", err)
	}
	return &sr, nil
}

func (r *SwapRepository) List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter, filter swap.ListSwapsFilter) ([]*swap.SwapRequest, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&swap.SwapRequest{}).
		Joins("JOIN shifts ON shifts.id = swap_requests.shift_id").
		Where("swap_requests.is_active = ?", true)
	base = scope.Apply(base, "shifts.hospital_id")
	base = rel.Apply(base)
	if filter.Status != "" {
		base = base.Where("swap_requests.status = ?", filter.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, internal.NewDependencyError("failed to count swap requests", err)
	}

	var swaps []*swap.SwapRequest
	err := base.
		Order("swap_requests.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&swaps).Error
	if err != nil {
		return nil, 0, internal.NewDependencyError("failed to list swap requests", err)
	}
	return swaps, total, nil
}

func (r *SwapRepository) UpdateStatus(ctx context.Context, id string, decision workflow.Decision) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&swap.SwapRequest{}).
		Where("id = ? AND status = ?", id, workflow.StatusPending).
		Updates(map[string]interface{}{
			"status":      decision.Status,
			"reviewed_by": decision.ReviewedBy,
			"reviewed_at": decision.ReviewedAt,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return false, internal.NewDependencyError("failed to update swap request status", result.Error)
	}
	return result.RowsAffected > 0, nil
}
