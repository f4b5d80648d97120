package analytics

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

// Repository defines the count queries behind the summary. Each count
// honors the same scope and relation filters as its list endpoint.
type Repository interface {
	CountPatients(ctx context.Context, scope accesscontrol.Scope) (int64, error)
	CountShifts(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error)
	CountLeaves(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error)
	CountTasks(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error)
	CountSwaps(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error)
	CountHandovers(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (int64, error)
	TasksByStatus(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (map[string]int64, error)
	TasksByPriority(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter) (map[string]int64, error)
}

type Service struct {
	repo   Repository
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger}
}

// Summarize fans out the per-entity counts. Any sub-count failure aborts
// the whole summary; partial dashboards are worse than an error.
func (s *Service) Summarize(ctx context.Context, actor *accesscontrol.Actor, requestedHospitalID string) (*Summary, error) {
	scope, _, err := s.authz.ListFilters(actor, requestedHospitalID, accesscontrol.NoRelation)
	if err != nil {
		return nil, err
	}

	taskRel := accesscontrol.TaskRelation.Narrow(actor)
	shiftRel := accesscontrol.ShiftRelation.Narrow(actor)
	leaveRel := accesscontrol.LeaveRelation.Narrow(actor)
	swapRel := accesscontrol.SwapRelation.Narrow(actor)
	handoverRel := accesscontrol.HandoverRelation.Narrow(actor)

	summary := &Summary{}
	var countErr error
	count := func(name string, fn func() (int64, error), dst *int64) {
		if countErr != nil {
			return
		}
		n, err := fn()
		if err != nil {
			s.logger.Error("summary count failed", "entity", name, "error", err)
			countErr = err
		}
		*dst = n
	}

	count("patients", func() (int64, error) { return s.repo.CountPatients(ctx, scope) }, &summary.Patients)
	count("shifts", func() (int64, error) { return s.repo.CountShifts(ctx, scope, shiftRel) }, &summary.Shifts)
	count("leave_requests", func() (int64, error) { return s.repo.CountLeaves(ctx, scope, leaveRel) }, &summary.LeaveRequests)
	count("tasks", func() (int64, error) { return s.repo.CountTasks(ctx, scope, taskRel) }, &summary.Tasks)
	count("swap_requests", func() (int64, error) { return s.repo.CountSwaps(ctx, scope, swapRel) }, &summary.SwapRequests)
	count("handovers", func() (int64, error) { return s.repo.CountHandovers(ctx, scope, handoverRel) }, &summary.Handovers)
	if countErr != nil {
		return nil, internal.NewDependencyError("failed to compute analytics summary", countErr)
	}

	byStatus, err := s.repo.TasksByStatus(ctx, scope, taskRel)
	if err != nil {
		s.logger.Error("summary task status breakdown failed", "error", err)
		return nil, internal.NewDependencyError("failed to compute analytics summary", err)
	}
	byPriority, err := s.repo.TasksByPriority(ctx, scope, taskRel)
	if err != nil {
		s.logger.Error("summary task priority breakdown failed", "error", err)
		return nil, internal.NewDependencyError("failed to compute analytics summary", err)
	}
	summary.TasksByStatus = byStatus
	summary.TasksByPriority = byPriority

	return summary, nil
}
