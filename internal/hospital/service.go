package hospital

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

// Repository defines the data access methods for hospitals
type Repository interface {
	Create(ctx context.Context, h *Hospital) error
	GetByID(ctx context.Context, id string) (*Hospital, error)
	List(ctx context.Context) ([]*Hospital, error)
	Update(ctx context.Context, h *Hospital) error
}

type Service struct {
	repo   Repository
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger}
}

// List returns every hospital, active and inactive. Only super_admin may
// enumerate tenants.
func (s *Service) List(ctx context.Context, actor *accesscontrol.Actor) ([]*Hospital, error) {
	if err := s.authz.Require(actor); err != nil {
		return nil, err
	}
	if !actor.Role.CanManageHospitals() {
		return nil, internal.ErrInsufficient
	}

	hospitals, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list hospitals", "error", err)
		return nil, err
	}
	return hospitals, nil
}

func (s *Service) Create(ctx context.Context, actor *accesscontrol.Actor, dto CreateHospitalDTO) (*Hospital, error) {
	if err := s.authz.Require(actor); err != nil {
		return nil, err
	}
	if !actor.Role.CanManageHospitals() {
		s.logger.Warn("hospital create denied", "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrInsufficient
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	h := &Hospital{
		ID:        uuid.NewString(),
		Name:      dto.Name,
		Code:      dto.Code,
		Address:   dto.Address,
		City:      dto.City,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("failed to create hospital", "error", err, "code", dto.Code)
		return nil, err
	}

	s.logger.Info("hospital created", "hospital_id", h.ID, "code", h.Code, "actor_id", actor.ID)
	return h, nil
}

// Get returns a hospital by id. A tenant admin may only read its own
// hospital; hod and staff have no hospital endpoint access.
func (s *Service) Get(ctx context.Context, actor *accesscontrol.Actor, id string) (*Hospital, error) {
	if err := s.canTouch(actor, id); err != nil {
		return nil, err
	}

	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) Update(ctx context.Context, actor *accesscontrol.Actor, id string, dto UpdateHospitalDTO) (*Hospital, error) {
	if err := s.canTouch(actor, id); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		h.Name = *dto.Name
	}
	if dto.Address != nil {
		h.Address = dto.Address
	}
	if dto.City != nil {
		h.City = dto.City
	}
	if dto.IsActive != nil {
		h.IsActive = *dto.IsActive
	}
	h.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("failed to update hospital", "error", err, "hospital_id", id)
		return nil, err
	}

	s.logger.Info("hospital updated", "hospital_id", id, "actor_id", actor.ID)
	return h, nil
}

func (s *Service) canTouch(actor *accesscontrol.Actor, hospitalID string) error {
	if err := s.authz.Require(actor); err != nil {
		return err
	}
	switch actor.Role {
	case accesscontrol.RoleSuperAdmin:
		return nil
	case accesscontrol.RoleAdmin:
		if actor.Hospital() != hospitalID {
			return internal.ErrTenantMismatch
		}
		return nil
	default:
		return internal.ErrInsufficient
	}
}
