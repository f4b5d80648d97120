package hospital

import "time"

// Hospital is the tenancy root: every scoped record carries one of these
// ids and the access-control engine filters on it.
type Hospital struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   *string   `json:"address,omitempty"`
	City      *string   `json:"city,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

func (h *Hospital) Deactivate() {
	h.IsActive = false
	h.UpdatedAt = time.Now()
}
