package patient

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

// Repository defines the data access methods for patients
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	List(ctx context.Context, scope accesscontrol.Scope) ([]*Patient, error)
	Update(ctx context.Context, p *Patient) error
}

type Service struct {
	repo   Repository
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger}
}

func (s *Service) List(ctx context.Context, actor *accesscontrol.Actor, requestedHospitalID string) ([]*Patient, error) {
	scope, _, err := s.authz.ListFilters(actor, requestedHospitalID, accesscontrol.NoRelation)
	if err != nil {
		return nil, err
	}

	patients, err := s.repo.List(ctx, scope)
	if err != nil {
		s.logger.Error("failed to list patients", "error", err)
		return nil, err
	}
	return patients, nil
}

func (s *Service) Create(ctx context.Context, actor *accesscontrol.Actor, dto CreatePatientDTO) (*Patient, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hospitalID, err := s.authz.WriteScope(actor, dto.HospitalID)
	if err != nil {
		return nil, err
	}
	if hospitalID == "" {
		return nil, internal.NewValidationError("hospital_id is required", internal.ErrCodeValidationFailed)
	}

	if dto.DepartmentID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "departments", "department_id", *dto.DepartmentID, hospitalID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	p := &Patient{
		ID:           uuid.NewString(),
		HospitalID:   hospitalID,
		DepartmentID: dto.DepartmentID,
		MRN:          dto.MRN,
		FullName:     dto.FullName,
		DateOfBirth:  dto.DateOfBirth,
		Gender:       dto.Gender,
		Notes:        dto.Notes,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create patient", "error", err, "hospital_id", hospitalID)
		return nil, err
	}

	s.logger.Info("patient created", "patient_id", p.ID, "hospital_id", hospitalID, "actor_id", actor.ID)
	return p, nil
}

func (s *Service) Get(ctx context.Context, actor *accesscontrol.Actor, id string) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanAccessRecord(actor, p.HospitalID, accesscontrol.NoRelation); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, actor *accesscontrol.Actor, id string, dto UpdatePatientDTO) (*Patient, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanAccessRecord(actor, p.HospitalID, accesscontrol.NoRelation); err != nil {
		return nil, err
	}

	if dto.DepartmentID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "departments", "department_id", *dto.DepartmentID, p.HospitalID); err != nil {
			return nil, err
		}
		p.DepartmentID = dto.DepartmentID
	}
	if dto.MRN != nil {
		p.MRN = dto.MRN
	}
	if dto.FullName != nil {
		p.FullName = *dto.FullName
	}
	if dto.DateOfBirth != nil {
		p.DateOfBirth = dto.DateOfBirth
	}
	if dto.Gender != nil {
		p.Gender = dto.Gender
	}
	if dto.Notes != nil {
		p.Notes = dto.Notes
	}
	if dto.IsActive != nil {
		p.IsActive = *dto.IsActive
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update patient", "error", err, "patient_id", id)
		return nil, err
	}

	s.logger.Info("patient updated", "patient_id", id, "actor_id", actor.ID)
	return p, nil
}
