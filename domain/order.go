package domain

import (
	"errors"
	"time"
)

type (
	OrderStatus   string
	OrderType     string
	PaymentMethod string
)

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"

	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"

	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

var (
	MessageSuccessCreateOrder  = "order created successfully"
	MessageSuccessUpdateStatus = "order status updated"
	MessageSuccessGetOrders    = "orders retrieved successfully"
	MessageSuccessGetOrder     = "order retrieved successfully"

	MessageFailedCreateOrder  = "failed to create order"
	MessageFailedUpdateStatus = "failed to update order status"
	MessageFailedGetOrders    = "failed to fetch orders"
	MessageFailedGetOrder     = "failed to fetch order"
	MessageFailedOrderStream  = "failed to subscribe to order changes"

	ErrOrderNotFound          = errors.New("order not found")
	ErrEmptyOrder             = errors.New("order must contain at least one item")
	ErrInvalidQuantity        = errors.New("quantity must be at least 1")
	ErrMenuItemUnavailable    = errors.New("menu item is unknown, inactive or unavailable in this canteen")
	ErrIllegalTransition      = errors.New("illegal order status transition")
	ErrUnknownOrderStatus     = errors.New("unknown order status")
	ErrOrderTerminal          = errors.New("order is already in a terminal status")
	ErrInvalidOrderType       = errors.New("invalid order type")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrOrderItemsNotPersisted = errors.New("order items could not be persisted")
	ErrOrderStatusChanged     = errors.New("order status was changed by another request, reload and retry")
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeaway || t == OrderTypeDelivery
}

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard || p == PaymentUPI
}

type (
	CustomerInfo struct {
		Name  string `json:"customer_name" validate:"omitempty,max=120"`
		Phone string `json:"customer_phone" validate:"omitempty,max=20"`
	}

	OrderLineRequest struct {
		MenuItemID          string `json:"menu_item_id" validate:"required,uuid"`
		Quantity            int    `json:"quantity" validate:"required,min=1"`
		SpecialInstructions string `json:"special_instructions" validate:"omitempty,max=500"`
	}

	CreateOrderRequest struct {
		CustomerInfo
		OrderType     OrderType          `json:"order_type" validate:"required,oneof=dine_in takeaway delivery"`
		PaymentMethod PaymentMethod      `json:"payment_method" validate:"required,oneof=cash card upi"`
		Notes         string             `json:"notes" validate:"omitempty,max=1000"`
		Items         []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	}

	UpdateOrderStatusRequest struct {
		Status OrderStatus `json:"status" validate:"required,oneof=pending preparing ready completed cancelled"`
	}

	OrderFilter struct {
		Status OrderStatus
		Search string
	}

	OrderItemResponse struct {
		ID                  string  `json:"id"`
		MenuItemID          string  `json:"menu_item_id"`
		MenuItemName        string  `json:"menu_item_name,omitempty"`
		PreparationTime     int     `json:"preparation_time,omitempty"`
		Quantity            int     `json:"quantity"`
		UnitPrice           float64 `json:"unit_price"`
		TotalPrice          float64 `json:"total_price"`
		SpecialInstructions string  `json:"special_instructions,omitempty"`
	}

	OrderResponse struct {
		ID            string              `json:"id"`
		CanteenID     string              `json:"canteen_id"`
		CustomerName  string              `json:"customer_name,omitempty"`
		CustomerPhone string              `json:"customer_phone,omitempty"`
		OrderType     OrderType           `json:"order_type"`
		PaymentMethod PaymentMethod       `json:"payment_method"`
		Status        OrderStatus         `json:"status"`
		TotalAmount   float64             `json:"total_amount"`
		ServedBy      string              `json:"served_by,omitempty"`
		Notes         string              `json:"notes,omitempty"`
		Items         []OrderItemResponse `json:"items"`
		CreatedAt     time.Time           `json:"created_at"`
		UpdatedAt     time.Time           `json:"updated_at"`
		CompletedAt   *time.Time          `json:"completed_at,omitempty"`
	}

	OrderChangeType string

	// OrderChangeEvent is what the change feed delivers for the orders table.
	OrderChangeEvent struct {
		Table     string          `json:"table"`
		Type      OrderChangeType `json:"type"`
		CanteenID string          `json:"canteen_id"`
		OrderID   string          `json:"order_id"`
		Status    OrderStatus     `json:"status"`
		At        time.Time       `json:"at"`
	}
)

const (
	OrderChangeInsert OrderChangeType = "INSERT"
	OrderChangeUpdate OrderChangeType = "UPDATE"

	OrdersTable = "orders"
)
