package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/auth"
)

// ProfileRepository implements auth.RepositoryAPI using GORM.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) auth.RepositoryAPI {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByEmail(email string) (*auth.Profile, error) {
	var profile auth.Profile
	err := r.db.Where("email = ?", email).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("profile not found", internal.ErrCodeProfileNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch profile", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByID(id string) (*auth.Profile, error) {
	var profile auth.Profile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewNotFoundError("profile not found", internal.ErrCodeProfileNotFound)
		}
		return nil, internal.NewDependencyError("failed to fetch profile", err)
	}
	return &profile, nil
}
