package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/handover"
)

// HandoverRepository implements handover.Repository using GORM
type HandoverRepository struct {
	db *gorm.DB
}

func NewHandoverRepository(db *gorm.DB) handover.Repository {
	return &HandoverRepository{db: db}
}

func (r *HandoverRepository) Create(ctx context.Context, h *handover.Handover) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return internal.NewDependencyError("failed to create handover", err)
	}
	return nil
}

func (r *HandoverRepository) GetByID(ctx context.Context, id string) (*handover.Handover, error) {
	var h handover.Handover
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("handover not found", internal.ErrCodeHandoverNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch handover", err)
	}
	return &h, nil
}

func (r *HandoverRepository) List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) ([]*handover.Handover, error) {
	var handovers []*handover.Handover
	query := scope.Apply(r.db.WithContext(ctx), "hospital_id")
	query = rel.Apply(query)
	err := query.Where("is_active = ?", true).Order("created_at DESC").Find(&handovers).Error
	if err != nil {
		return nil, internal.NewDependencyError("failed to list handovers", err)
	}
	return handovers, nil
}

func (r *HandoverRepository) Update(ctx context.Context, h *handover.Handover) error {
	if err := r.db.WithContext(ctx).Save(h).Error; err != nil {
		return internal.NewDependencyError("failed to update handover", err)
	}
	return nil
}
