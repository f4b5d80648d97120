package handover

import (
	"strings"

	"github.com/frahmantamala/hospital-workforce/internal"
)

type CreateHandoverDTO struct {
	HospitalID   string  `json:"hospital_id"`
	DepartmentID *string `json:"department_id,omitempty"`
	PatientID    *string `json:"patient_id,omitempty"`
	ShiftID      *string `json:"shift_id,omitempty"`
	ToUserID     *string `json:"to_user_id,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (d *CreateHandoverDTO) Validate() error {
	if d.Notes != nil && strings.TrimSpace(*d.Notes) == "" {
		return internal.NewValidationError("notes cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateHandoverDTO struct {
	DepartmentID *string `json:"department_id,omitempty"`
	PatientID    *string `json:"patient_id,omitempty"`
	ShiftID      *string `json:"shift_id,omitempty"`
	ToUserID     *string `json:"to_user_id,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (d *UpdateHandoverDTO) Validate() error {
	if d.Notes != nil && strings.TrimSpace(*d.Notes) == "" {
		return internal.NewValidationError("notes cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
