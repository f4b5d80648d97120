package shift

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

// Repository defines the data access methods for shifts
type Repository interface {
	Create(ctx context.Context, sh *Shift) error
	GetByID(ctx context.Context, id string) (*Shift, error)
	List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) ([]*Shift, error)
}

type Service struct {
	repo   Repository
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger}
}

// List returns the scoped roster. Doctors and nurses only see shifts
// assigned to them; reviewers see the whole tenant.
func (s *Service) List(ctx context.Context, actor *accesscontrol.Actor, requestedHospitalID string) ([]*Shift, error) {
	scope, rel, err := s.authz.ListFilters(actor, requestedHospitalID, accesscontrol.ShiftRelation)
	if err != nil {
		return nil, err
	}

	shifts, err := s.repo.List(ctx, scope, rel)
	if err != nil {
		s.logger.Error("failed to list shifts", "error", err)
		return nil, err
	}
	return shifts, nil
}

// Create schedules a shift. Staff cannot author shifts; scheduling is a
// reviewer capability.
func (s *Service) Create(ctx context.Context, actor *accesscontrol.Actor, dto CreateShiftDTO) (*Shift, error) {
	if err := s.authz.Require(actor); err != nil {
		return nil, err
	}
	if !actor.Role.CanCreateShifts() {
		s.logger.Warn("shift create denied", "actor_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrInsufficient
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

	if dto.DepartmentID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "departments", "department_id", *dto.DepartmentID, hospitalID); err != nil {
			return nil, err
		}
	}
	if dto.AssignedUserID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "profiles", "assigned_user_id", *dto.AssignedUserID, hospitalID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	sh := &Shift{
		ID:             uuid.NewString(),
		HospitalID:     hospitalID,
		DepartmentID:   dto.DepartmentID,
		AssignedUserID: dto.AssignedUserID,
		ShiftType:      dto.ShiftType,
		StartAt:        dto.StartAt,
		EndAt:          dto.EndAt,
		Notes:          dto.Notes,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		s.logger.Error("failed to create shift", "error", err, "hospital_id", hospitalID)
		return nil, err
	}

	s.logger.Info("shift created", "shift_id", sh.ID, "hospital_id", hospitalID, "actor_id", actor.ID)
	return sh, nil
}
