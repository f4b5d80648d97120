package auth

import (
	"strings"

	"github.com/frahmantamala/hospital-workforce/internal"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d *RefreshDTO) Validate() error {
	if d.RefreshToken == "" {
		return internal.NewValidationError("refresh_token is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
