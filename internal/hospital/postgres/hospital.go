package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/hospital"
)

// HospitalRepository implements hospital.Repository using GORM
type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) hospital.Repository {
	return &HospitalRepository{db: db}
}

func (r *HospitalRepository) Create(ctx context.Context, h *hospital.Hospital) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return internal.NewDependencyError("failed to create hospital", err)
	}
	return nil
}

func (r *HospitalRepository) GetByID(ctx context.Context, id string) (*hospital.Hospital, error) {
	var h hospital.Hospital
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("hospital not found", internal.ErrCodeHospitalNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch hospital", err)
	}
	return &h, nil
}

func (r *HospitalRepository) List(ctx context.Context) ([]*hospital.Hospital, error) {
	var hospitals []*hospital.Hospital
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&hospitals).Error
	if err != nil {
		return nil, internal.NewDependencyError("failed to list hospitals", err)
	}
	return hospitals, nil
}

func (r *HospitalRepository) Update(ctx context.Context, h *hospital.Hospital) error {
	if err := r.db.WithContext(ctx).Save(h).Error; err != nil {
		return internal.NewDependencyError("failed to update hospital", err)
	}
	return nil
}
