package order

import (
	"context"
	"fmt"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"gorm.io/gorm"
)

type (
	OrderRepository interface {
		GetMenuItemsByIDs(ctx context.Context, canteenID string, ids []string) ([]*entities.MenuItem, error)
		CreateOrderWithItems(ctx context.Context, order *entities.Order, items []*entities.OrderItem) error
		GetOrderByID(ctx context.Context, canteenID, id string) (*entities.Order, error)
		GetOrders(ctx context.Context, canteenID string, filter domain.OrderFilter, page, limit int) ([]*entities.Order, int64, error)
		UpdateOrderStatus(ctx context.Context, order *entities.Order, from domain.OrderStatus) error
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetMenuItemsByIDs(ctx context.Context, canteenID string, ids []string) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem
	if err := r.db.WithContext(ctx).
		Where("canteen_id = ? AND id IN ?", canteenID, ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateOrderWithItems writes the order and its lines in one transaction.
func (r *orderRepository) CreateOrderWithItems(ctx context.Context, order *entities.Order, items []*entities.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("OrderItems").Create(order).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		if err := tx.Omit("MenuItem", "Order").Create(&items).Error; err != nil {
			return fmt.Errorf("%w: %w", domain.ErrOrderItemsNotPersisted, err)
		}
		order.OrderItems = items
		return nil
	})
}

func (r *orderRepository) GetOrderByID(ctx context.Context, canteenID, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems.MenuItem").
		Where("canteen_id = ? AND id = ?", canteenID, id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrders(ctx context.Context, canteenID string, filter domain.OrderFilter, page, limit int) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Order{}).Where("canteen_id = ?", canteenID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(customer_name ILIKE ? OR customer_phone ILIKE ? OR CAST(id AS TEXT) ILIKE ?)", like, like, like)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("OrderItems.MenuItem").
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

// UpdateOrderStatus writes only the status and fulfilment columns, and only
// while the row still holds the status the transition was checked against.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order *entities.Order, from domain.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Order{}).
		Where("id = ? AND canteen_id = ? AND status = ?", order.ID, order.CanteenID, from).
		Select("status", "served_by", "completed_at").
		Updates(map[string]any{
			"status":       order.Status,
			"served_by":    order.ServedBy,
			"completed_at": order.CompletedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderStatusChanged
	}
	return nil
}
