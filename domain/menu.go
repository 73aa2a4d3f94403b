package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateCategory = "category created successfully"
	MessageSuccessUpdateCategory = "category updated successfully"
	MessageSuccessDeleteCategory = "category deleted successfully"
	MessageSuccessGetCategories  = "categories retrieved successfully"
	MessageSuccessCreateMenuItem = "menu item created successfully"
	MessageSuccessUpdateMenuItem = "menu item updated successfully"
	MessageSuccessDeleteMenuItem = "menu item deleted successfully"
	MessageSuccessGetMenuItems   = "menu items retrieved successfully"
	MessageSuccessUploadImage    = "menu item image uploaded successfully"

	MessageFailedCreateCategory = "failed to create category"
	MessageFailedUpdateCategory = "failed to update category"
	MessageFailedDeleteCategory = "failed to delete category"
	MessageFailedGetCategories  = "failed to retrieve categories"
	MessageFailedCreateMenuItem = "failed to create menu item"
	MessageFailedUpdateMenuItem = "failed to update menu item"
	MessageFailedDeleteMenuItem = "failed to delete menu item"
	MessageFailedGetMenuItems   = "failed to retrieve menu items"
	MessageFailedUploadImage    = "failed to upload menu item image"

	ErrCategoryNotFound = errors.New("category not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrCategoryInUse    = errors.New("category has menu items with order history, deactivate it instead")
	ErrInvalidPrice     = errors.New("price must not be negative")
	ErrInvalidPrepTime  = errors.New("preparation time must not be negative")
)

type (
	CategoryRequest struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description" validate:"omitempty"`
		IsActive    *bool  `json:"is_active"`
	}

	CategoryResponse struct {
		ID          string    `json:"id"`
		CanteenID   string    `json:"canteen_id"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		IsActive    bool      `json:"is_active"`
		ItemCount   int64     `json:"item_count"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// Price is a pointer so a missing price is told apart from a free item.
	MenuItemRequest struct {
		Name            string   `json:"name" validate:"required"`
		Description     string   `json:"description" validate:"omitempty"`
		Price           *float64 `json:"price" validate:"required,min=0"`
		CategoryID      string   `json:"category_id" validate:"required,uuid"`
		PreparationTime int      `json:"preparation_time" validate:"min=0"`
		IsActive        *bool    `json:"is_active"`
		IsAvailable     *bool    `json:"is_available"`
	}

	MenuItemFilter struct {
		CategoryID    string
		Search        string
		AvailableOnly bool
	}

	UploadMenuItemImageRequest struct {
		MenuItemID string                `json:"menu_item_id" form:"menu_item_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	MenuItemResponse struct {
		ID              string    `json:"id"`
		CanteenID       string    `json:"canteen_id"`
		CategoryID      string    `json:"category_id"`
		CategoryName    string    `json:"category_name,omitempty"`
		Name            string    `json:"name"`
		Description     string    `json:"description,omitempty"`
		Price           float64   `json:"price"`
		PreparationTime int       `json:"preparation_time"`
		ImageURL        string    `json:"image_url,omitempty"`
		IsActive        bool      `json:"is_active"`
		IsAvailable     bool      `json:"is_available"`
		CreatedAt       time.Time `json:"created_at"`
	}
)
