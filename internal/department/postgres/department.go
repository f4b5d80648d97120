package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/department"
)

// DepartmentRepository implements department.Repository using GORM
type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		return internal.NewDependencyError("failed to create department", err)
	}
	return nil
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*department.Department, error) {
	var d department.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("department not found", internal.ErrCodeDepartmentNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch department", err)
	}
	return &d, nil
}

func (r *DepartmentRepository) List(ctx context.Context, scope accesscontrol.Scope) ([]*department.Department, error) {
	var departments []*department.Department
	query := scope.Apply(r.db.WithContext(ctx), "hospital_id")
	err := query.Where("is_active = ?", true).Order("name ASC").Find(&departments).Error
	if err != nil {
		return nil, internal.NewDependencyError("failed to list departments", err)
	}
	return departments, nil
}

func (r *DepartmentRepository) Update(ctx context.Context, d *department.Department) error {
	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		return internal.NewDependencyError("failed to update department", err)
	}
	return nil
}
