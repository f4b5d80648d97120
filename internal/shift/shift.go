package shift

import "time"

type Shift struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	HospitalID     string    `json:"hospital_id"`
	DepartmentID   *string   `json:"department_id,omitempty"`
	AssignedUserID *string   `json:"assigned_user_id,omitempty"`
	ShiftType      string    `json:"shift_type"`
	StartAt        time.Time `json:"start_at"`
	EndAt          time.Time `json:"end_at"`
	Notes          *string   `json:"notes,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}
