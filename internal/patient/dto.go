package patient

import (
	"strings"
	"time"

	"github.com/frahmantamala/hospital-workforce/internal"
)

type CreatePatientDTO struct {
	HospitalID   string     `json:"hospital_id"`
	DepartmentID *string    `json:"department_id,omitempty"`
	MRN          *string    `json:"mrn,omitempty"`
	FullName     string     `json:"full_name"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Gender       *string    `json:"gender,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

func (d *CreatePatientDTO) Validate() error {
	if strings.TrimSpace(d.FullName) == "" {
		return internal.NewValidationError("full_name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdatePatientDTO struct {
	DepartmentID *string    `json:"department_id,omitempty"`
	MRN          *string    `json:"mrn,omitempty"`
	FullName     *string    `json:"full_name,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Gender       *string    `json:"gender,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	IsActive     *bool      `json:"is_active,omitempty"`
}

func (d *UpdatePatientDTO) Validate() error {
	if d.FullName != nil && strings.TrimSpace(*d.FullName) == "" {
		return internal.NewValidationError("full_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
