package hospital

import (
	"strings"

	"github.com/frahmantamala/hospital-workforce/internal"
)

type CreateHospitalDTO struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
}

func (d *CreateHospitalDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(d.Code) == "" {
		return internal.NewValidationError("code is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateHospitalDTO struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	City     *string `json:"city,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (d *UpdateHospitalDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
