package accesscontrol

// Role is the fixed authority level of a profile. There is no total order
// between roles; each carries a named capability set.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleHOD        Role = "hod"
	RoleDoctor     Role = "doctor"
	RoleNurse      Role = "nurse"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleHOD, RoleDoctor, RoleNurse:
		return true
	}
	return false
}

// IsStaff reports whether the role is clinical staff, subject to
// relation-narrowed visibility on tasks, leaves, swaps and handovers.
func (r Role) IsStaff() bool {
	return r == RoleDoctor || r == RoleNurse
}

// IsReviewer reports whether the role may approve, reject or cancel
// workflow requests within its tenant.
func (r Role) IsReviewer() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleHOD
}

// CanManageHospitals: only super_admin may list or create hospitals.
// Tenant admins read/update their own hospital through a separate check.
func (r Role) CanManageHospitals() bool {
	return r == RoleSuperAdmin
}

func (r Role) CanManageDepartments() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleHOD
}

// CanCreateShifts: clinical staff never author shifts.
func (r Role) CanCreateShifts() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleHOD
}

// Actor is the authorization view of an authenticated profile.
type Actor struct {
	ID           string
	Role         Role
	HospitalID   *string
	DepartmentID *string
	Active       bool
}

// Hospital returns the actor's tenant binding, empty for super_admin or an
// unprovisioned profile.
func (a *Actor) Hospital() string {
	if a == nil || a.HospitalID == nil {
		return ""
	}
	return *a.HospitalID
}
