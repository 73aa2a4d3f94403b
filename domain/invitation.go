package domain

import (
	"errors"
	"fmt"
	"time"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"

	InvitationTTL = 7 * 24 * time.Hour
)

var (
	MessageSuccessCreateInvitation = "staff invitation sent successfully"
	MessageSuccessGetInvitation    = "invitation retrieved successfully"
	MessageSuccessAcceptInvitation = "you have successfully joined the canteen, please check your email to confirm your account"

	MessageFailedCreateInvitation = "failed to send staff invitation"
	MessageFailedGetInvitation    = "invitation error"
	MessageFailedAcceptInvitation = "registration failed"

	ErrInvitationNotFound = errors.New("invitation not found or expired")
	ErrInvitationExpired  = errors.New("this invitation has expired")
	ErrInvitationMissing  = errors.New("invitation token is missing or invalid")
)

// InvitationConsumedError reports a token whose status is no longer pending.
type InvitationConsumedError struct {
	Status InvitationStatus
}

func (e *InvitationConsumedError) Error() string {
	return fmt.Sprintf("this invitation has already been %s", e.Status)
}

type (
	CreateInvitationRequest struct {
		Email string `json:"email" validate:"required,email"`
		Role  Role   `json:"role" validate:"required,role"`
	}

	AcceptInvitationRequest struct {
		Token    string `json:"token" validate:"required"`
		FullName string `json:"full_name" validate:"required"`
		Password string `json:"password" validate:"required,min=6"`
	}

	InvitationResponse struct {
		Email     string           `json:"email"`
		Role      Role             `json:"role"`
		CanteenID string           `json:"canteen_id"`
		Status    InvitationStatus `json:"status"`
		ExpiresAt time.Time        `json:"expires_at"`
	}

	CreateInvitationResponse struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Role      Role      `json:"role"`
		ExpiresAt time.Time `json:"expires_at"`
		EmailSent bool      `json:"email_sent"`
	}

	AcceptInvitationResponse struct {
		UserID    string `json:"user_id"`
		ProfileID string `json:"profile_id"`
		Email     string `json:"email"`
		Role      Role   `json:"role"`
		CanteenID string `json:"canteen_id"`
		// BookkeepingPending is set when the member was enrolled but the
		// invitation could not be marked accepted.
		BookkeepingPending bool `json:"bookkeeping_pending"`
	}
)
