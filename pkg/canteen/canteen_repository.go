package canteen

import (
	"context"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CanteenRepository interface {
		// CreateCanteenForOwner inserts the canteen and links the owner's
		// profile in one transaction.
		CreateCanteenForOwner(ctx context.Context, canteen *entities.Canteen, profileID string) error
		GetCanteenByID(ctx context.Context, id string) (*entities.Canteen, error)
		UpdateCanteen(ctx context.Context, canteen *entities.Canteen) error
		DeleteCanteen(ctx context.Context, id string) error
		SeedCanteen(ctx context.Context, profileID string, data *SampleData) error
	}

	canteenRepository struct {
		db *gorm.DB
	}
)

func NewCanteenRepository(db *gorm.DB) CanteenRepository {
	return &canteenRepository{db: db}
}

func linkProfile(tx *gorm.DB, profileID string, canteenID uuid.UUID) error {
	res := tx.Model(&entities.Profile{}).
		Where("id = ? AND canteen_id IS NULL", profileID).
		Update("canteen_id", canteenID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCanteenAlreadyLinked
	}
	return nil
}

func (r *canteenRepository) CreateCanteenForOwner(ctx context.Context, canteen *entities.Canteen, profileID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(canteen).Error; err != nil {
			return err
		}
		return linkProfile(tx, profileID, canteen.ID)
	})
}

func (r *canteenRepository) GetCanteenByID(ctx context.Context, id string) (*entities.Canteen, error) {
	var canteen entities.Canteen
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&canteen).Error; err != nil {
		return nil, err
	}
	return &canteen, nil
}

func (r *canteenRepository) UpdateCanteen(ctx context.Context, canteen *entities.Canteen) error {
	return r.db.WithContext(ctx).
		Model(&entities.Canteen{}).
		Where("id = ?", canteen.ID).
		Updates(map[string]any{
			"name":        canteen.Name,
			"description": canteen.Description,
			"address":     canteen.Address,
			"phone":       canteen.Phone,
			"is_active":   canteen.IsActive,
		}).Error
}

// DeleteCanteen relies on ON DELETE CASCADE for categories, menu items and
// orders; member profiles are unlinked by ON DELETE SET NULL.
func (r *canteenRepository) DeleteCanteen(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Canteen{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *canteenRepository) SeedCanteen(ctx context.Context, profileID string, data *SampleData) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(data.Canteen).Error; err != nil {
			return err
		}
		if err := linkProfile(tx, profileID, data.Canteen.ID); err != nil {
			return err
		}
		if err := tx.Omit("Canteen").Create(&data.Categories).Error; err != nil {
			return err
		}
		if err := tx.Omit("Canteen", "Category").Create(&data.MenuItems).Error; err != nil {
			return err
		}
		if err := tx.Omit("Canteen", "OrderItems").Create(&data.Orders).Error; err != nil {
			return err
		}
		return tx.Omit("Order", "MenuItem").Create(&data.OrderItems).Error
	})
}
