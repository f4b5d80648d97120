package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/shift"
)

// ShiftRepository implements shift.Repository using GORM
type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.Repository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(ctx context.Context, sh *shift.Shift) error {
	if err := r.db.WithContext(ctx).Create(sh).Error; err != nil {
		return internal.NewDependencyError("failed to create shift", err)
	}
	return nil
}

func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*shift.Shift, error) {
	var sh shift.Shift
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sh).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("shift not found", internal.ErrCodeShiftNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch shift", err)
	}
	return &sh, nil
}

func (r *ShiftRepository) List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) ([]*shift.Shift, error) {
	var shifts []*shift.Shift
	query := scope.Apply(r.db.WithContext(ctx), "hospital_id")
	query = rel.Apply(query)
	err := query.Where("is_active = ?", true).Order("start_at ASC").Find(&shifts).Error
	if err != nil {
		return nil, internal.NewDependencyError("failed to list shifts", err)
	}
	return shifts, nil
}
