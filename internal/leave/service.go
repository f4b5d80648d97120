package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

// Repository defines the data access methods for leave requests
type Repository interface {
	Create(ctx context.Context, lr *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter, filter ListLeavesFilter) ([]*LeaveRequest, error)
	// UpdateStatus applies the decision only while the row is still
	// pending; it reports whether a row was updated.
	UpdateStatus(ctx context.Context, id string, decision workflow.Decision) (bool, error)
}

type Service struct {
	repo   Repository
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger, now: time.Now}
}

func (s *Service) List(ctx context.Context, actor *accesscontrol.Actor, filter ListLeavesFilter) ([]*LeaveRequest, error) {
	scope, rel, err := s.authz.ListFilters(actor, filter.HospitalID, accesscontrol.LeaveRelation)
	if err != nil {
		return nil, err
	}

	leaves, err := s.repo.List(ctx, scope, rel, filter)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err)
		return nil, err
	}
	return leaves, nil
}

// Create files a leave request for the actor. The owner is always the
// actor; the department defaults from the actor's profile when the body
// leaves it out.
func (s *Service) Create(ctx context.Context, actor *accesscontrol.Actor, dto CreateLeaveDTO) (*LeaveRequest, error) {
	if err := s.authz.Require(actor); err != nil {
		return nil, err
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hospitalID := actor.Hospital()
	if hospitalID == "" {
		return nil, internal.ErrNoTenantScope
	}
	if dto.HospitalID != "" && dto.HospitalID != hospitalID {
		return nil, internal.ErrTenantMismatch
	}

	departmentID := dto.DepartmentID
	if departmentID == nil {
		departmentID = actor.DepartmentID
	}
	if departmentID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "departments", "department_id", *departmentID, hospitalID); err != nil {
			return nil, err
		}
	}

	now := s.now()
	lr := &LeaveRequest{
		ID:           uuid.NewString(),
		UserID:       actor.ID,
		HospitalID:   hospitalID,
		DepartmentID: departmentID,
		StartDate:    dto.StartDate,
		EndDate:      dto.EndDate,
		Reason:       dto.Reason,
		Status:       workflow.StatusPending,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, lr); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "hospital_id", hospitalID)
		return nil, err
	}

	s.logger.Info("leave request created", "leave_id", lr.ID, "hospital_id", hospitalID, "actor_id", actor.ID)
	return lr, nil
}

func (s *Service) Get(ctx context.Context, actor *accesscontrol.Actor, id string) (*LeaveRequest, error) {
	lr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanAccessRecord(actor, lr.HospitalID, accesscontrol.LeaveRelation, &lr.UserID); err != nil {
		return nil, err
	}
	return lr, nil
}

// Transition moves a leave request to a new status. The persisted update
// is conditional on the row still being pending; a concurrent reviewer
// winning the race surfaces as CONFLICT.
func (s *Service) Transition(ctx context.Context, actor *accesscontrol.Actor, id string, dto TransitionDTO) (*LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	lr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.CanAccessRecord(actor, lr.HospitalID, accesscontrol.LeaveRelation, &lr.UserID); err != nil {
		return nil, err
	}

	decision, err := workflow.Transition(actor, lr.UserID, lr.Status, dto.Status, s.now())
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, decision)
	if err != nil {
		s.logger.Error("failed to update leave request status", "error", err, "leave_id", id)
		return nil, err
	}
	if !updated {
		s.logger.Warn("leave transition lost race", "leave_id", id, "actor_id", actor.ID)
		return nil, internal.NewConflictError("request was already reviewed", internal.ErrCodeTransitionConflict)
	}

	s.logger.Info("leave request transitioned",
		"leave_id", id,
		"from", lr.Status,
		"to", decision.Status,
		"actor_id", actor.ID)

	lr.Status = decision.Status
	lr.ReviewedBy = decision.ReviewedBy
	lr.ReviewedAt = decision.ReviewedAt
	lr.UpdatedAt = s.now()
	return lr, nil
}
