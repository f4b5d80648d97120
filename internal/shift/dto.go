package shift

import (
	"strings"
	"time"

	"github.com/frahmantamala/hospital-workforce/internal"
)

type CreateShiftDTO struct {
	HospitalID     string    `json:"hospital_id"`
	DepartmentID   *string   `json:"department_id,omitempty"`
	AssignedUserID *string   `json:"assigned_user_id,omitempty"`
	ShiftType      string    `json:"shift_type"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Notes          *string   `json:"notes,omitempty"`
}

func (d *CreateShiftDTO) Validate() error {
	if strings.TrimSpace(d.ShiftType) == "" {
		return internal.NewValidationError("shift_type is required", internal.ErrCodeValidationFailed)
	}
	if d.StartAt.IsZero() || d.EndAt.IsZero() {
		return internal.NewValidationError("start_at and end_at are required", internal.ErrCodeValidationFailed)
	}
	if !d.EndAt.After(d.StartAt) {
		return internal.NewValidationError("end_at must be after start_at", internal.ErrCodeInvalidDateRange)
	}
	return nil
}
