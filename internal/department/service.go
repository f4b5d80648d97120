package department

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

// Repository defines the data access methods for departments
type Repository interface {
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id string) (*Department, error)
	List(ctx context.Context, scope accesscontrol.Scope) ([]*Department, error)
	Update(ctx context.Context, d *Department) error
}

type Service struct {
	repo   Repository
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger}
}

// List returns the departments of the scoped hospital. Department
// management is a reviewer capability; doctors and nurses are denied even
// inside their own tenant.
func (s *Service) List(ctx context.Context, actor *accesscontrol.Actor, requestedHospitalID string) ([]*Department, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}
	scope, _, err := s.authz.ListFilters(actor, requestedHospitalID, accesscontrol.NoRelation)
	if err != nil {
		return nil, err
	}

	departments, err := s.repo.List(ctx, scope)
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}
	return departments, nil
}

func (s *Service) Create(ctx context.Context, actor *accesscontrol.Actor, dto CreateDepartmentDTO) (*Department, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}
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

	if dto.HodUserID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "profiles", "hod_user_id", *dto.HodUserID, hospitalID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	d := &Department{
		ID:         uuid.NewString(),
		HospitalID: hospitalID,
		Name:       dto.Name,
		Type:       dto.Type,
		HodUserID:  dto.HodUserID,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("failed to create department", "error", err, "hospital_id", hospitalID)
		return nil, err
	}

	s.logger.Info("department created", "department_id", d.ID, "hospital_id", hospitalID, "actor_id", actor.ID)
	return d, nil
}

func (s *Service) Get(ctx context.Context, actor *accesscontrol.Actor, id string) (*Department, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanAccessRecord(actor, d.HospitalID, accesscontrol.NoRelation); err != nil {
		return nil, err
	}
	return d, nil
}

// Update patches a department in place. hospital_id is immutable: the DTO
// cannot carry one and the stored value is never touched.
func (s *Service) Update(ctx context.Context, actor *accesscontrol.Actor, id string, dto UpdateDepartmentDTO) (*Department, error) {
	if err := s.requireManager(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanAccessRecord(actor, d.HospitalID, accesscontrol.NoRelation); err != nil {
		return nil, err
	}

	if dto.HodUserID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "profiles", "hod_user_id", *dto.HodUserID, d.HospitalID); err != nil {
			return nil, err
		}
		d.HodUserID = dto.HodUserID
	}
	if dto.Name != nil {
		d.Name = *dto.Name
	}
	if dto.Type != nil {
		d.Type = dto.Type
	}
	if dto.IsActive != nil {
		d.IsActive = *dto.IsActive
	}
	d.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, err
	}

	s.logger.Info("department updated", "department_id", id, "actor_id", actor.ID)
	return d, nil
}

func (s *Service) requireManager(actor *accesscontrol.Actor) error {
	if err := s.authz.Require(actor); err != nil {
		return err
	}
	if !actor.Role.CanManageDepartments() {
		s.logger.Warn("department access denied", "actor_id", actor.ID, "role", actor.Role)
		return internal.ErrInsufficient
	}
	return nil
}
