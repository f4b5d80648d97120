package leave

import (
	"time"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

type CreateLeaveDTO struct {
	HospitalID   string    `json:"hospital_id"`
	DepartmentID *string   `json:"department_id,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Reason       *string   `json:"reason,omitempty"`
}

func (d *CreateLeaveDTO) Validate() error {
	if d.StartDate.IsZero() || d.EndDate.IsZero() {
		return internal.NewValidationError("start_date and end_date are required", internal.ErrCodeValidationFailed)
	}
	if d.EndDate.Before(d.StartDate) {
		return internal.NewValidationError("end_date must not be before start_date", internal.ErrCodeInvalidDateRange)
	}
	return nil
}

// TransitionDTO is the body of a status update; the workflow decision
// validates the target against the actor and the stored row.
type TransitionDTO struct {
	Status workflow.Status `json:"status"`
}

func (d *TransitionDTO) Validate() error {
	if !d.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

// ListLeavesFilter carries the supported list query parameters.
type ListLeavesFilter struct {
	HospitalID string
	Status     string
}
