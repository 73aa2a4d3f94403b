package entities

import (
	"time"

	"canteen-backend/domain"

	"github.com/google/uuid"
)

type Invitation struct {
	ID        uuid.UUID               `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Token     string                  `gorm:"uniqueIndex;not null" json:"-"`
	Email     string                  `gorm:"index;not null" json:"email"`
	Role      domain.Role             `gorm:"type:varchar(32);not null" json:"role"`
	CanteenID uuid.UUID               `gorm:"type:uuid;index;not null" json:"canteen_id"`
	InvitedBy uuid.UUID               `gorm:"type:uuid" json:"invited_by"`
	Status    domain.InvitationStatus `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	ExpiresAt time.Time               `json:"expires_at"`

	Canteen *Canteen `gorm:"foreignKey:CanteenID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

// InvitationDetails is the row shape returned by get_invitation_details_by_token.
type InvitationDetails struct {
	Email     string                  `json:"email"`
	Role      domain.Role             `json:"role"`
	CanteenID uuid.UUID               `json:"canteen_id"`
	Status    domain.InvitationStatus `json:"status"`
	ExpiresAt time.Time               `json:"expires_at"`
}
