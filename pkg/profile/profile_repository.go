package profile

import (
	"context"
	"errors"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"gorm.io/gorm"
)

type (
	ProfileRepository interface {
		GetProfileByUserID(ctx context.Context, userID string) (*entities.Profile, error)
		CreateProfile(ctx context.Context, profile *entities.Profile) error
		UpdateProfile(ctx context.Context, profile *entities.Profile) error
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).
		Preload("Canteen").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *entities.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) UpdateProfile(ctx context.Context, profile *entities.Profile) error {
	return r.db.WithContext(ctx).
		Model(&entities.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"full_name": profile.FullName,
			"phone":     profile.Phone,
		}).Error
}
