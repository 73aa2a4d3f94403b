package entities

import (
	"canteen-backend/domain"

	"github.com/google/uuid"
)

type Profile struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `gorm:"type:varchar(32);not null;default:owner" json:"role"`
	CanteenID *uuid.UUID  `gorm:"type:uuid;index" json:"canteen_id,omitempty"`
	IsActive  bool        `gorm:"default:true" json:"is_active"`
	Phone     string      `json:"phone,omitempty"`

	Canteen *Canteen `gorm:"foreignKey:CanteenID;constraint:OnDelete:SET NULL" json:"canteen,omitempty"`
	Timestamp
}
