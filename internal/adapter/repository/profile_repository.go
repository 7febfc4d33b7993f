package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/entities"
	"github.com/MatheusBP09/sales-insight-buddy/internal/domain/repositories"
)

// profileRepository implements the ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) repositories.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByEmail retrieves a profile by email (case-insensitive)
func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Create creates a new profile record
func (r *profileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}
