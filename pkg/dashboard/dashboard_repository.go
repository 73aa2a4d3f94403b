package dashboard

import (
	"context"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"gorm.io/gorm"
)

type (
	PeriodTotals struct {
		Revenue float64
		Orders  int64
	}

	DashboardRepository interface {
		GetPeriodTotals(ctx context.Context, canteenID string, from, to time.Time) (PeriodTotals, error)
		CountPendingOrders(ctx context.Context, canteenID string) (int64, error)
		CountActiveMenuItems(ctx context.Context, canteenID string) (int64, error)
		GetPopularItems(ctx context.Context, canteenID string, from time.Time, limit int) ([]domain.PopularItem, error)
		GetRecentOrders(ctx context.Context, canteenID string, limit int) ([]*entities.Order, error)
	}

	dashboardRepository struct {
		db *gorm.DB
	}
)

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetPeriodTotals(ctx context.Context, canteenID string, from, to time.Time) (PeriodTotals, error) {
	var totals PeriodTotals
	err := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders").
		Where("canteen_id = ? AND status <> ? AND created_at >= ? AND created_at < ?",
			canteenID, domain.OrderStatusCancelled, from, to).
		Scan(&totals).Error
	return totals, err
}

func (r *dashboardRepository) CountPendingOrders(ctx context.Context, canteenID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("canteen_id = ? AND status = ?", canteenID, domain.OrderStatusPending).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) CountActiveMenuItems(ctx context.Context, canteenID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.MenuItem{}).
		Where("canteen_id = ? AND is_active = ?", canteenID, true).
		Count(&count).Error
	return count, err
}

func (r *dashboardRepository) GetPopularItems(ctx context.Context, canteenID string, from time.Time, limit int) ([]domain.PopularItem, error) {
	var items []domain.PopularItem
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("menu_items.name AS name, SUM(order_items.quantity) AS order_count").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Where("orders.canteen_id = ? AND orders.status <> ? AND orders.created_at >= ?",
			canteenID, domain.OrderStatusCancelled, from).
		Group("menu_items.name").
		Order("order_count desc, menu_items.name asc").
		Limit(limit).
		Scan(&items).Error
	return items, err
}

func (r *dashboardRepository) GetRecentOrders(ctx context.Context, canteenID string, limit int) ([]*entities.Order, error) {
	var orders []*entities.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("canteen_id = ?", canteenID).
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}
