package swap

import (
	"time"

	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

// SwapRequest carries no hospital_id of its own: tenancy is derived
// through the referenced shift, so every access decision resolves the
// shift first.
type SwapRequest struct {
	ID                  string          `json:"id" gorm:"primaryKey"`
	ShiftID             string          `json:"shift_id"`
	RequesterID         string          `json:"requester_id"`
	RequestedWithUserID *string         `json:"requested_with_user_id,omitempty"`
	Status              workflow.Status `json:"status"`
	Reason              *string         `json:"reason,omitempty"`
	ReviewedBy          *string         `json:"reviewed_by,omitempty"`
	ReviewedAt          *time.Time      `json:"reviewed_at,omitempty"`
	IsActive            bool            `json:"is_active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (SwapRequest) TableName() string {
	return "swap_requests"
}
