package accesscontrol

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
)

// Scope is the tenant filter a query must be restricted to. A nil
// HospitalID means unrestricted (super_admin without a requested filter).
type Scope struct {
	HospitalID *string
}

// Unrestricted reports whether the scope spans all hospitals.
func (s Scope) Unrestricted() bool {
	return s.HospitalID == nil
}

// Allows reports whether a record tagged with hospitalID falls inside the
// scope.
func (s Scope) Allows(hospitalID string) bool {
	if s.HospitalID == nil {
		return true
	}
	return *s.HospitalID == hospitalID
}

// Apply narrows a query to the scoped tenant. column is the qualified
// hospital id column, e.g. "hospital_id" or "shifts.hospital_id" for
// entities whose tenant is inherited through a join.
func (s Scope) Apply(db *gorm.DB, column string) *gorm.DB {
	if s.HospitalID == nil {
		return db
	}
	return db.Where(column+" = ?", *s.HospitalID)
}

// ResolveScope computes the effective tenant filter for an actor and an
// optional requested hospital filter. This is the single source of tenant
// isolation; every list/read/write path resolves through it.
func ResolveScope(actor *Actor, requestedHospitalID string) (Scope, error) {
	if actor == nil {
		return Scope{}, internal.NewUnauthenticatedError("authentication required", internal.ErrCodeInvalidToken)
	}

	if actor.Role == RoleSuperAdmin {
		if requestedHospitalID == "" {
			return Scope{}, nil
		}
		id := requestedHospitalID
		return Scope{HospitalID: &id}, nil
	}

	own := actor.Hospital()
	if own == "" {
		return Scope{}, internal.ErrNoTenantScope
	}
	if requestedHospitalID != "" && requestedHospitalID != own {
		return Scope{}, internal.ErrTenantMismatch
	}
	return Scope{HospitalID: &own}, nil
}
