package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateCanteen = "canteen created successfully"
	MessageSuccessGetCanteen    = "canteen retrieved successfully"
	MessageSuccessUpdateCanteen = "canteen settings updated successfully"
	MessageSuccessDeleteCanteen = "canteen deleted successfully"
	MessageSuccessSeedCanteen   = "your sample canteen has been created"

	MessageFailedCreateCanteen = "failed to create canteen"
	MessageFailedGetCanteen    = "failed to fetch settings"
	MessageFailedUpdateCanteen = "failed to update canteen settings"
	MessageFailedDeleteCanteen = "failed to delete canteen"
	MessageFailedSeedCanteen   = "could not create sample data"

	ErrCanteenNotFound       = errors.New("canteen not found")
	ErrCanteenAlreadyLinked  = errors.New("profile is already linked to a canteen")
	ErrOnlyOwnerCreatesShops = errors.New("only an owner can create a canteen")
)

type (
	CanteenRequest struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description" validate:"omitempty"`
		Address     string `json:"address" validate:"omitempty"`
		Phone       string `json:"phone" validate:"omitempty,max=20"`
	}

	UpdateCanteenRequest struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description" validate:"omitempty"`
		Address     string `json:"address" validate:"omitempty"`
		Phone       string `json:"phone" validate:"omitempty,max=20"`
		IsActive    *bool  `json:"is_active"`
	}

	CanteenResponse struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		Address     string    `json:"address,omitempty"`
		Phone       string    `json:"phone,omitempty"`
		OwnerID     string    `json:"owner_id"`
		IsActive    bool      `json:"is_active"`
		CreatedAt   time.Time `json:"created_at"`
	}
)
