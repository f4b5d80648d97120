package swap

import (
	"strings"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

type CreateSwapDTO struct {
	ShiftID             string  `json:"shift_id"`
	RequestedWithUserID *string `json:"requested_with_user_id,omitempty"`
	Reason              *string `json:"reason,omitempty"`
}

func (d *CreateSwapDTO) Validate() error {
	if strings.TrimSpace(d.ShiftID) == "" {
		return internal.NewValidationError("shift_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type TransitionDTO struct {
	Status workflow.Status `json:"status"`
}

func (d *TransitionDTO) Validate() error {
	if !d.Status.Valid() {
		return internal.NewValidationError("invalid status", internal.ErrCodeInvalidStatus)
	}
	return nil
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListSwapsFilter carries the supported list query parameters. Limit and
// offset are normalized before use.
type ListSwapsFilter struct {
	HospitalID string
	Status     string
	Limit      int
	Offset     int
}

func (f *ListSwapsFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}

// SwapPage is the pagination envelope for swap listings.
type SwapPage struct {
	Items   []*SwapRequest `json:"items"`
	Total   int64          `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	HasMore bool           `json:"has_more"`
}
