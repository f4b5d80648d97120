package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/patient"
)

// PatientRepository implements patient.Repository using GORM
type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) patient.Repository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return internal.NewDependencyError("failed to create patient", err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("patient not found", internal.ErrCodePatientNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch patient", err)
	}
	return &p, nil
}

func (r *PatientRepository) List(ctx context.Context, scope accesscontrol.Scope) ([]*patient.Patient, error) {
	var patients []*patient.Patient
	query := scope.Apply(r.db.WithContext(ctx), "hospital_id")
	err := query.Where("is_active = ?", true).Order("created_at DESC").Find(&patients).Error
	if err != nil {
		return nil, internal.NewDependencyError("failed to list patients", err)
	}
	return patients, nil
}

func (r *PatientRepository) Update(ctx context.Context, p *patient.Patient) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return internal.NewDependencyError("failed to update patient", err)
	}
	return nil
}
