package entities

import (
	"time"

	"canteen-backend/domain"

	"github.com/google/uuid"
)

// User is an identity-provider account. Profiles hang off it by UserID.
type User struct {
	ID               uuid.UUID   `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email            string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string      `json:"-"`
	FullName         string      `json:"full_name"`
	Role             domain.Role `gorm:"type:varchar(32)" json:"role,omitempty"` // sign-up metadata, the profile row is authoritative
	Provider         string      `gorm:"default:email" json:"provider"`
	EmailConfirmedAt *time.Time  `json:"email_confirmed_at,omitempty"`

	Timestamp
}

type Session struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}
