package accesscontrol

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
)

// TenantGuard validates that a referenced row belongs to an expected
// tenant before it is linked to another entity. It prevents attaching a
// sibling tenant's department, patient or shift even when the caller
// somehow obtained its identifier.
type TenantGuard struct {
	db *gorm.DB
}

func NewTenantGuard(db *gorm.DB) *TenantGuard {
	return &TenantGuard{db: db}
}

// EnsureSameTenant fetches the referenced row's hospital_id and compares
// it to the expected tenant. field is the request field name used in the
// rejection message.
func (g *TenantGuard) EnsureSameTenant(ctx context.Context, table, field, id, expectedHospitalID string) error {
	// hospital_id may be NULL (a super_admin profile has no tenant);
	// a NULL never matches a tenant, so it fails the same way a
	// sibling tenant's row does.
	var hospitalID sql.NullString
	err := g.db.WithContext(ctx).
		Table(table).
		Select("hospital_id").
		Where("id = ?", id).
		Take(&hospitalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.NewValidationError(field+" not found", internal.ErrCodeCrossTenantLink)
		}
		return internal.NewDependencyError("failed to resolve "+field, err)
	}

	if !hospitalID.Valid || hospitalID.String != expectedHospitalID {
		return internal.NewValidationError(field+" does not belong to hospital", internal.ErrCodeCrossTenantLink)
	}
	return nil
}
