package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

// Repository defines the data access methods for tasks and their comments
type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, scope accesscontrol.Scope, rel accesscontrol.RelationFilter, filter ListTasksFilter) ([]*Task, error)
	Update(ctx context.Context, t *Task) error

	CreateComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, taskID string) ([]*Comment, error)
}

type Service struct {
	repo   Repository
	authz  *accesscontrol.Authorizer
	logger *slog.Logger
}

func NewService(repo Repository, authz *accesscontrol.Authorizer, logger *slog.Logger) *Service {
	return &Service{repo: repo, authz: authz, logger: logger}
}

// List returns tenant-scoped tasks, narrowed for staff to rows that name
// them as creator or assignee.
func (s *Service) List(ctx context.Context, actor *accesscontrol.Actor, filter ListTasksFilter) ([]*Task, error) {
	scope, rel, err := s.authz.ListFilters(actor, filter.HospitalID, accesscontrol.TaskRelation)
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.List(ctx, scope, rel, filter)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, err
	}
	return tasks, nil
}

func (s *Service) Create(ctx context.Context, actor *accesscontrol.Actor, dto CreateTaskDTO) (*Task, error) {
	if err := s.authz.Require(actor); err != nil {
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

	if err := s.guardLinks(ctx, hospitalID, dto.DepartmentID, dto.PatientID, dto.AssignedTo); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &Task{
		ID:           uuid.NewString(),
		HospitalID:   hospitalID,
		DepartmentID: dto.DepartmentID,
		PatientID:    dto.PatientID,
		CreatedBy:    actor.ID,
		AssignedTo:   dto.AssignedTo,
		Title:        dto.Title,
		Description:  dto.Description,
		Status:       dto.Status,
		Priority:     dto.Priority,
		DueAt:        dto.DueAt,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create task", "error", err, "hospital_id", hospitalID)
		return nil, err
	}

	s.logger.Info("task created", "task_id", t.ID, "hospital_id", hospitalID, "actor_id", actor.ID)
	return t, nil
}

func (s *Service) Get(ctx context.Context, actor *accesscontrol.Actor, id string) (*Task, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update re-validates against the stored row's hospital_id and participant
// columns before applying the patch; the caller-supplied body is never
// trusted for access decisions.
func (s *Service) Update(ctx context.Context, actor *accesscontrol.Actor, id string, dto UpdateTaskDTO) (*Task, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, t); err != nil {
		return nil, err
	}

	if err := s.guardLinks(ctx, t.HospitalID, dto.DepartmentID, dto.PatientID, dto.AssignedTo); err != nil {
		return nil, err
	}

	if dto.DepartmentID != nil {
		t.DepartmentID = dto.DepartmentID
	}
	if dto.PatientID != nil {
		t.PatientID = dto.PatientID
	}
	if dto.AssignedTo != nil {
		t.AssignedTo = dto.AssignedTo
	}
	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = dto.Description
	}
	if dto.Status != nil {
		t.Status = *dto.Status
	}
	if dto.Priority != nil {
		t.Priority = *dto.Priority
	}
	if dto.DueAt != nil {
		t.DueAt = dto.DueAt
	}
	if dto.IsActive != nil {
		t.IsActive = *dto.IsActive
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, err
	}

	s.logger.Info("task updated", "task_id", id, "actor_id", actor.ID)
	return t, nil
}

// ListComments returns the comments of a task the actor can read.
func (s *Service) ListComments(ctx context.Context, actor *accesscontrol.Actor, taskID string) ([]*Comment, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, t); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, taskID)
	if err != nil {
		s.logger.Error("failed to list task comments", "error", err, "task_id", taskID)
		return nil, err
	}
	return comments, nil
}

func (s *Service) AddComment(ctx context.Context, actor *accesscontrol.Actor, taskID string, dto CreateCommentDTO) (*Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	t, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.canRead(actor, t); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		UserID:    actor.ID,
		Body:      dto.Body,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateComment(ctx, c); err != nil {
		s.logger.Error("failed to create task comment", "error", err, "task_id", taskID)
		return nil, err
	}

	s.logger.Info("task comment created", "comment_id", c.ID, "task_id", taskID, "actor_id", actor.ID)
	return c, nil
}

func (s *Service) canRead(actor *accesscontrol.Actor, t *Task) error {
	return s.authz.CanAccessRecord(actor, t.HospitalID, accesscontrol.TaskRelation, &t.CreatedBy, t.AssignedTo)
}

func (s *Service) guardLinks(ctx context.Context, hospitalID string, departmentID, patientID, assignedTo *string) error {
	if departmentID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "departments", "department_id", *departmentID, hospitalID); err != nil {
			return err
		}
	}
	if patientID != nil {
		if err := s.authz.EnsureSameTenant(ctx, "patients", "patient_id", *patientID, hospitalID); err != nil {
			return err
		}
	}
	if assignedTo != nil {
		if err := s.authz.EnsureSameTenant(ctx, "profiles", "assigned_to", *assignedTo, hospitalID); err != nil {
			return err
		}
	}
	return nil
}
