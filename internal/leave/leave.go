package leave

import (
	"time"

	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

// LeaveRequest is owned by the requesting user; staff visibility is
// narrowed to their own rows and transitions run through the shared
// workflow decision.
type LeaveRequest struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	UserID       string          `json:"user_id"`
	HospitalID   string          `json:"hospital_id"`
	DepartmentID *string         `json:"department_id,omitempty"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Reason       *string         `json:"reason,omitempty"`
	Status       workflow.Status `json:"status"`
	ReviewedBy   *string         `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewed_at,omitempty"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
