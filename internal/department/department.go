package department

import "time"

// Department belongs to exactly one hospital. The hospital_id is set at
// creation and never moves; updates may rename the department or swap its
// head of department, but re-homing a department across tenants is not a
// supported operation.
type Department struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	HospitalID string    `json:"hospital_id"`
	Name       string    `json:"name"`
	Type       *string   `json:"type,omitempty"`
	HodUserID  *string   `json:"hod_user_id,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}
