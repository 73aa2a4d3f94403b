package domain

import (
	"errors"
)

type Role string

const (
	RoleOwner            Role = "owner"
	RoleManager          Role = "manager"
	RoleCashier          Role = "cashier"
	RoleChef             Role = "chef"
	RoleInventoryHandler Role = "inventory_handler"
)

var Roles = []Role{RoleOwner, RoleManager, RoleCashier, RoleChef, RoleInventoryHandler}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageFailedCanteenSetup   = "canteen setup required"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrUserNotAllowed     = errors.New("user not allowed")
	ErrTokenNotFound      = errors.New("failed to token not found")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrPermissionDenied   = errors.New("role is not permitted to perform this action")
	ErrCanteenNotSetUp    = errors.New("profile has no canteen, complete canteen setup first")
	ErrProfileInactive    = errors.New("profile is deactivated")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrCrossCanteenAccess = errors.New("record belongs to another canteen")
)

type (
	// Identity is what the identity provider vouches for about the caller.
	Identity struct {
		UserID   string `json:"user_id"`
		Email    string `json:"email"`
		FullName string `json:"full_name,omitempty"`
	}

	// Session is built once per request from the token and the resolved
	// profile, then handed to every workflow call.
	Session struct {
		ID        string   `json:"session_id"`
		Identity  Identity `json:"identity"`
		ProfileID string   `json:"profile_id"`
		Role      Role     `json:"role"`
		CanteenID string   `json:"canteen_id,omitempty"`
		IsActive  bool     `json:"is_active"`
	}

	PaginationResponse struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)

func (s Session) HasCanteen() bool {
	return s.CanteenID != ""
}

// Unprovisioned reports an owner that signed in but never created a canteen.
func (s Session) Unprovisioned() bool {
	return s.Role == RoleOwner && !s.HasCanteen()
}

func NewPagination(page, limit int, total int64) PaginationResponse {
	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}
