package patient

import "time"

// Patient carries no owner or counterpart semantics: tenant scope alone
// decides visibility, so every active role in the hospital sees the full
// patient roster.
type Patient struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	HospitalID   string     `json:"hospital_id"`
	DepartmentID *string    `json:"department_id,omitempty"`
	MRN          *string    `json:"mrn,omitempty" gorm:"column:mrn"`
	FullName     string     `json:"full_name"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Gender       *string    `json:"gender,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
