package task

import (
	"strings"
	"time"

	"github.com/frahmantamala/hospital-workforce/internal"
)

type CreateTaskDTO struct {
	HospitalID   string     `json:"hospital_id"`
	DepartmentID *string    `json:"department_id,omitempty"`
	PatientID    *string    `json:"patient_id,omitempty"`
	AssignedTo   *string    `json:"assigned_to,omitempty"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Status       Status     `json:"status,omitempty"`
	Priority     Priority   `json:"priority,omitempty"`
	DueAt        *time.Time `json:"due_at,omitempty"`
}

func (d *CreateTaskDTO) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if d.Status == "" {
		d.Status = StatusTodo
	}
	if !d.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if !d.Priority.Valid() {
		return internal.NewValidationError("invalid priority", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateTaskDTO struct {
	DepartmentID *string    `json:"department_id,omitempty"`
	PatientID    *string    `json:"patient_id,omitempty"`
	AssignedTo   *string    `json:"assigned_to,omitempty"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Status       *Status    `json:"status,omitempty"`
	Priority     *Priority  `json:"priority,omitempty"`
	DueAt        *time.Time `json:"due_at,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
}

func (d *UpdateTaskDTO) Validate() error {
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return internal.NewValidationError("title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Status != nil && !d.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	if d.Priority != nil && !d.Priority.Valid() {
		return internal.NewValidationError("invalid priority", internal.ErrCodeValidationFailed)
	}
	return nil
}

// ListTasksFilter carries the supported list query parameters.
type ListTasksFilter struct {
	HospitalID string
	PatientID  string
	AssignedTo string
}

type CreateCommentDTO struct {
	Body string `json:"body"`
}

func (d *CreateCommentDTO) Validate() error {
	if strings.TrimSpace(d.Body) == "" {
		return internal.NewValidationError("body is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
