package staff

import (
	"context"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"gorm.io/gorm"
)

type (
	StaffRepository interface {
		GetStaff(ctx context.Context, canteenID string, filter domain.StaffFilter) ([]*entities.Profile, error)
		GetStaffByID(ctx context.Context, canteenID, id string) (*entities.Profile, error)
		UpdateStaff(ctx context.Context, profile *entities.Profile) error
		SetStaffActive(ctx context.Context, id string, active bool) error
	}

	staffRepository struct {
		db *gorm.DB
	}
)

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetStaff(ctx context.Context, canteenID string, filter domain.StaffFilter) ([]*entities.Profile, error) {
	var profiles []*entities.Profile

	query := r.db.WithContext(ctx).Where("canteen_id = ?", canteenID)
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(full_name ILIKE ? OR email ILIKE ?)", like, like)
	}

	if err := query.Order("created_at asc").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *staffRepository) GetStaffByID(ctx context.Context, canteenID, id string) (*entities.Profile, error) {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).
		Where("canteen_id = ? AND id = ?", canteenID, id).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *staffRepository) UpdateStaff(ctx context.Context, profile *entities.Profile) error {
	return r.db.WithContext(ctx).
		Model(&entities.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"full_name": profile.FullName,
			"phone":     profile.Phone,
			"role":      profile.Role,
		}).Error
}

func (r *staffRepository) SetStaffActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&entities.Profile{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
