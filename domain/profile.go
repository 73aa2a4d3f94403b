package domain

import (
	"errors"
	"time"
)

const DefaultDisplayName = "New User"

var (
	MessageSuccessGetProfile    = "profile retrieved successfully"
	MessageSuccessUpdateProfile = "profile updated successfully"
	MessageSuccessGetPages      = "permitted pages retrieved successfully"

	MessageFailedGetProfile    = "failed to retrieve profile"
	MessageFailedUpdateProfile = "failed to update profile"

	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileResolution    = errors.New("failed to resolve profile")
	ErrProfileAlreadyExists = errors.New("profile already exists for this identity")
)

type (
	CanteenSummary struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Address string `json:"address,omitempty"`
	}

	ProfileResponse struct {
		ID        string          `json:"id"`
		UserID    string          `json:"user_id"`
		Email     string          `json:"email"`
		FullName  string          `json:"full_name"`
		Role      Role            `json:"role"`
		CanteenID string          `json:"canteen_id,omitempty"`
		Canteen   *CanteenSummary `json:"canteen,omitempty"`
		IsActive  bool            `json:"is_active"`
		Phone     string          `json:"phone,omitempty"`
		CreatedAt time.Time       `json:"created_at"`
	}

	UpdateProfileRequest struct {
		FullName string `json:"full_name" validate:"required"`
		Phone    string `json:"phone" validate:"omitempty,max=20"`
	}
)
