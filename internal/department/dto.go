package department

import (
	"strings"

	"github.com/frahmantamala/hospital-workforce/internal"
)

type CreateDepartmentDTO struct {
	HospitalID string  `json:"hospital_id"`
	Name       string  `json:"name"`
	Type       *string `json:"type,omitempty"`
	HodUserID  *string `json:"hod_user_id,omitempty"`
}

func (d *CreateDepartmentDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateDepartmentDTO deliberately has no hospital_id field: tenancy is
// immutable after creation.
type UpdateDepartmentDTO struct {
	Name      *string `json:"name,omitempty"`
	Type      *string `json:"type,omitempty"`
	HodUserID *string `json:"hod_user_id,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (d *UpdateDepartmentDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
