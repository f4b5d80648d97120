package handover

import "time"

// Handover records care passing from one user to another; staff only see
// handovers naming them on either side.
type Handover struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	HospitalID   string    `json:"hospital_id"`
	DepartmentID *string   `json:"department_id,omitempty"`
	PatientID    *string   `json:"patient_id,omitempty"`
	ShiftID      *string   `json:"shift_id,omitempty"`
	FromUserID   string    `json:"from_user_id"`
	ToUserID     *string   `json:"to_user_id,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Handover) TableName() string {
	return "handovers"
}
