package entities

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CanteenID   uuid.UUID `gorm:"type:uuid;index;not null" json:"canteen_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	Canteen *Canteen `gorm:"foreignKey:CanteenID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

type MenuItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CanteenID       uuid.UUID `gorm:"type:uuid;index;not null" json:"canteen_id"`
	CategoryID      uuid.UUID `gorm:"type:uuid;index;not null" json:"category_id"`
	Name            string    `gorm:"not null" json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           float64   `gorm:"type:numeric(10,2);not null;check:price >= 0" json:"price"`
	PreparationTime int       `gorm:"not null;default:0;check:preparation_time >= 0" json:"preparation_time"`
	ImageURL        string    `json:"image_url,omitempty"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	IsAvailable     bool      `gorm:"default:true" json:"is_available"`

	// ArchivedAt is set instead of deleting an item that appears on orders.
	ArchivedAt *time.Time `gorm:"index" json:"archived_at,omitempty"`

	Canteen  *Canteen  `gorm:"foreignKey:CanteenID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"`
	Timestamp
}
