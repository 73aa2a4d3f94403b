package menu

import (
	"context"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		GetCategories(ctx context.Context, canteenID string) ([]*entities.Category, error)
		CountItemsByCategory(ctx context.Context, canteenID string) (map[string]int64, error)
		GetCategoryByID(ctx context.Context, canteenID, id string) (*entities.Category, error)
		CreateCategory(ctx context.Context, category *entities.Category) error
		UpdateCategory(ctx context.Context, category *entities.Category) error
		DeleteCategory(ctx context.Context, canteenID, id string) error

		GetMenuItems(ctx context.Context, canteenID string, filter domain.MenuItemFilter) ([]*entities.MenuItem, error)
		GetMenuItemByID(ctx context.Context, canteenID, id string) (*entities.MenuItem, error)
		CreateMenuItem(ctx context.Context, item *entities.MenuItem) error
		UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error
		UpdateMenuItemImage(ctx context.Context, id, imageURL string) error
		DeleteMenuItem(ctx context.Context, canteenID, id string) error
		ArchiveMenuItem(ctx context.Context, canteenID, id string, at time.Time) error

		// order history that pins menu rows in place
		CountOrderLinesByMenuItem(ctx context.Context, id string) (int64, error)
		CountOrderLinesByCategory(ctx context.Context, canteenID, categoryID string) (int64, error)
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) GetCategories(ctx context.Context, canteenID string) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).
		Where("canteen_id = ?", canteenID).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *menuRepository) CountItemsByCategory(ctx context.Context, canteenID string) (map[string]int64, error) {
	var rows []struct {
		CategoryID string
		Count      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Select("category_id, COUNT(*) AS count").
		Where("canteen_id = ? AND archived_at IS NULL", canteenID).
		Group("category_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.Count
	}
	return counts, nil
}

func (r *menuRepository) GetCategoryByID(ctx context.Context, canteenID, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).
		Where("canteen_id = ? AND id = ?", canteenID, id).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Omit("Canteen").Create(category).Error
}

func (r *menuRepository) UpdateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).
		Model(&entities.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":        category.Name,
			"description": category.Description,
			"is_active":   category.IsActive,
		}).Error
}

func (r *menuRepository) DeleteCategory(ctx context.Context, canteenID, id string) error {
	res := r.db.WithContext(ctx).
		Where("canteen_id = ? AND id = ?", canteenID, id).
		Delete(&entities.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepository) GetMenuItems(ctx context.Context, canteenID string, filter domain.MenuItemFilter) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem

	query := r.db.WithContext(ctx).Preload("Category").Where("canteen_id = ? AND archived_at IS NULL", canteenID)
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.AvailableOnly {
		query = query.Where("is_active = ? AND is_available = ?", true, true)
	}

	if err := query.Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) GetMenuItemByID(ctx context.Context, canteenID, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("canteen_id = ? AND id = ? AND archived_at IS NULL", canteenID, id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) CreateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Omit("Canteen", "Category").Create(item).Error
}

func (r *menuRepository) UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"category_id":      item.CategoryID,
			"name":             item.Name,
			"description":      item.Description,
			"price":            item.Price,
			"preparation_time": item.PreparationTime,
			"is_active":        item.IsActive,
			"is_available":     item.IsAvailable,
		}).Error
}

func (r *menuRepository) UpdateMenuItemImage(ctx context.Context, id, imageURL string) error {
	return r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
}

func (r *menuRepository) DeleteMenuItem(ctx context.Context, canteenID, id string) error {
	res := r.db.WithContext(ctx).
		Where("canteen_id = ? AND id = ?", canteenID, id).
		Delete(&entities.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepository) ArchiveMenuItem(ctx context.Context, canteenID, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Where("canteen_id = ? AND id = ? AND archived_at IS NULL", canteenID, id).
		Updates(map[string]any{
			"archived_at":  at,
			"is_active":    false,
			"is_available": false,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *menuRepository) CountOrderLinesByMenuItem(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.OrderItem{}).
		Where("menu_item_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *menuRepository) CountOrderLinesByCategory(ctx context.Context, canteenID, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.OrderItem{}).
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("menu_items.canteen_id = ? AND menu_items.category_id = ?", canteenID, categoryID).
		Count(&count).Error
	return count, err
}
