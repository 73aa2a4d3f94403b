package entities

import (
	"time"

	"canteen-backend/domain"

	"github.com/google/uuid"
)

type Order struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CanteenID     uuid.UUID            `gorm:"type:uuid;index;not null" json:"canteen_id"`
	CustomerName  *string              `json:"customer_name,omitempty"`
	CustomerPhone *string              `json:"customer_phone,omitempty"`
	OrderType     domain.OrderType     `gorm:"type:varchar(16);not null;default:dine_in" json:"order_type"`
	PaymentMethod domain.PaymentMethod `gorm:"type:varchar(16);not null;default:cash" json:"payment_method"`
	Status        domain.OrderStatus   `gorm:"type:varchar(16);index;not null;default:pending" json:"status"`
	TotalAmount   float64              `gorm:"type:numeric(10,2);not null;check:total_amount >= 0" json:"total_amount"`
	ServedBy      *uuid.UUID           `gorm:"type:uuid" json:"served_by,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
	CompletedAt   *time.Time           `json:"completed_at,omitempty"`

	Canteen    *Canteen     `gorm:"foreignKey:CanteenID;constraint:OnDelete:CASCADE" json:"-"`
	OrderItems []*OrderItem `gorm:"foreignKey:OrderID" json:"order_items,omitempty"`
	Timestamp
}

// OrderItem carries the price snapshot taken at order creation; it is never
// rewritten after insert. Its menu item FK has no ON DELETE action, so a sold
// item cannot be deleted on its own but still goes with its whole canteen.
type OrderItem struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderID             uuid.UUID `gorm:"type:uuid;index;not null" json:"order_id"`
	MenuItemID          uuid.UUID `gorm:"type:uuid;index;not null" json:"menu_item_id"`
	Quantity            int       `gorm:"not null;check:quantity >= 1" json:"quantity"`
	UnitPrice           float64   `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	TotalPrice          float64   `gorm:"type:numeric(10,2);not null" json:"total_price"`
	SpecialInstructions *string   `json:"special_instructions,omitempty"`

	Order    *Order    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Timestamp
}
