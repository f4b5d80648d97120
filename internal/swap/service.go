package swap

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/shift"
	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

// Repository defines the data access methods for swap requests
type Repository interface {
	Create(ctx context.Context, sr *SwapRequest) error
	GetByID(ctx context.Context, id string) (*SwapRequest, error)
	List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter, filter ListSwapsFilter) ([]*SwapRequest, int64, error)
	UpdateStatus(ctx context.Context, id string, decision workflow.Decision) (bool, error)
}

// ShiftLookup resolves the shift a swap request hangs off; the swap's
// tenant is the shift's tenant.
type ShiftLookup interface {
	GetByID(ctx context.Context, id string) (*shift.Shift, error)
}

type Service struct {
	repo   Repository
	shifts ShiftLookup
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, shifts ShiftLookup, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, shifts: shifts, authz: authz, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context, actor *accesscontrol.Actor, filter ListSwapsFilter) (*SwapPage, error) {
	scope, rel, err := s.authz.ListFilters(actor, filter.HospitalID, accesscontrol.SwapRelation)
	if err != nil {
		return nil, err
	}
	filter.Normalize()

	swaps, total, err := s.repo.List(ctx, scope, rel, filter)
	if err != nil {
		s.logger.Error("failed to list swap requests", "error", err)
		return nil, err
	}

	return &SwapPage{
		Items:   swaps,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
		HasMore: int64(filter.Offset+len(swaps)) < total,
	}, nil
}

// Create opens a swap request against a shift in the actor's hospital.
// Doctors and nurses may only offer a shift currently assigned to them.
func (s *Service) Create(ctx context.Context, actor *accesscontrol.Actor, dto CreateSwapDTO) (*SwapRequest, error) {
	if err := s.authz.Require(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sh, err := s.shifts.GetByID(ctx, dto.ShiftID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanAccessRecord(actor, sh.HospitalID, accesscontrol.NoRelation); err != nil {
		return nil, err
	}
	if actor.Role.IsStaff() {
		if sh.AssignedUserID == nil || *sh.AssignedUserID != actor.ID {
			s.logger.Warn("swap create denied: shift not assigned to actor",
				"actor_id", actor.ID, "shift_id", sh.ID)
			return nil, internal.NewForbiddenError("only the assigned user can offer this shift", internal.ErrCodeRelationViolation)
		}
	}

	if dto.RequestedWithUserID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "profiles", "requested_with_user_id", *dto.RequestedWithUserID, sh.HospitalID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	sr := &SwapRequest{
		ID:                  uuid.NewString(),
		ShiftID:             sh.ID,
		RequesterID:         actor.ID,
		RequestedWithUserID: dto.RequestedWithUserID,
		Status:              workflow.StatusPending,
		Reason:              dto.Reason,
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.Create(ctx, sr); err != nil {
		s.logger.Error("failed to create swap request", "error", err, "shift_id", sh.ID)
		return nil, err
	}

	s.logger.Info("swap request created", "swap_id", sr.ID, "shift_id", sh.ID, "actor_id", actor.ID)
	return sr, nil
}

func (s *Service) Get(ctx context.Context, actor *accesscontrol.Actor, id string) (*SwapRequest, error) {
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canAccess(ctx, actor, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

// Transition moves a swap request to a new status, with the same
// conditional-update race handling as leave requests.
func (s *Service) Transition(ctx context.Context, actor *accesscontrol.Actor, id string, dto TransitionDTO) (*SwapRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canAccess(ctx, actor, sr); err != nil {
		return nil, err
	}

	decision, err := workflow.Transition(actor, sr.RequesterID, sr.Status, dto.Status, s.now())
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, decision)
	if err != nil {
		s.logger.Error("failed to update swap request status", "error", err, "swap_id", id)
		return nil, err
	}
	if !updated {
		s.logger.Warn("swap transition lost race", "swap_id", id, "actor_id", actor.ID)
		return nil, internal.NewConflictError("request was already reviewed", internal.ErrCodeTransitionConflict)
	}

	s.logger.Info("swap request transitioned",
		"swap_id", id,
		"from", sr.Status,
		"to", decision.Status,
		"actor_id", actor.ID)

	sr.Status = decision.Status
	sr.ReviewedBy = decision.ReviewedBy
	sr.ReviewedAt = decision.ReviewedAt
	sr.UpdatedAt = s.now()
	return sr, nil
}

func (s *Service) canAccess(ctx context.Context, actor *accesscontrol.Actor, sr *SwapRequest) error {
	sh, err := s.shifts.GetByID(ctx, sr.ShiftID)
	if err != nil {
		return err
	}
	return s.authz.CanAccessRecord(actor, sh.HospitalID, accesscontrol.SwapRelation, &sr.RequesterID, sr.RequestedWithUserID)
}
