package domain

import "errors"

var (
	MessageSuccessGetStaff       = "staff members retrieved successfully"
	MessageSuccessUpdateStaff    = "staff member updated successfully"
	MessageSuccessSetStaffActive = "staff status updated successfully"

	MessageFailedGetStaff       = "failed to fetch staff members"
	MessageFailedUpdateStaff    = "failed to update staff member"
	MessageFailedSetStaffActive = "failed to update staff status"

	ErrStaffNotFound        = errors.New("staff member not found")
	ErrOnlyOwnerAssignsRole = errors.New("only an owner can assign the owner role or edit an owner")
	ErrCannotChangeOwnRole  = errors.New("you cannot change your own role")
	ErrCannotDeactivateSelf = errors.New("you cannot deactivate yourself")
)

type (
	StaffFilter struct {
		Role   Role
		Search string
	}

	UpdateStaffRequest struct {
		FullName string `json:"full_name" validate:"required"`
		Phone    string `json:"phone" validate:"omitempty,max=20"`
		Role     Role   `json:"role" validate:"required,role"`
	}

	SetStaffActiveRequest struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
)
