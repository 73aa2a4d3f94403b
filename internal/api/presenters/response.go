package presenters

import (
	"errors"

	"canteen-backend/domain"
	"canteen-backend/internal/utils/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// Fail writes err with the status StatusFor picks for it.
func Fail(c *fiber.Ctx, message string, err error) error {
	return ErrorResponse(c, StatusFor(err), message, err)
}

var (
	badRequest = []error{
		domain.ErrValidation,
		domain.ErrParseUUID,
		domain.ErrEmptyOrder,
		domain.ErrInvalidQuantity,
		domain.ErrMenuItemUnavailable,
		domain.ErrIllegalTransition,
		domain.ErrUnknownOrderStatus,
		domain.ErrInvalidOrderType,
		domain.ErrInvalidPaymentMethod,
		domain.ErrInvalidPrice,
		domain.ErrInvalidPrepTime,
		domain.ErrInvitationMissing,
		domain.ErrTokenInvalid,
		domain.ErrOAuthStateMismatch,
		domain.ErrOAuthEmailUnverified,
		storage.ErrFileTypeNotAllowed,
	}
	unauthorized = []error{
		domain.ErrUnauthenticated,
		domain.ErrInvalidCredentials,
		domain.ErrTokenNotFound,
		domain.ErrTokenExpired,
		domain.ErrSessionNotFound,
		domain.ErrSessionRevoked,
	}
	forbidden = []error{
		domain.ErrPermissionDenied,
		domain.ErrUserNotAllowed,
		domain.ErrProfileInactive,
		domain.ErrEmailNotConfirmed,
		domain.ErrOnlyOwnerCreatesShops,
		domain.ErrOnlyOwnerAssignsRole,
		domain.ErrCannotChangeOwnRole,
		domain.ErrCannotDeactivateSelf,
		domain.ErrCrossCanteenAccess,
	}
	notFound = []error{
		domain.ErrUserNotFound,
		domain.ErrProfileNotFound,
		domain.ErrCanteenNotFound,
		domain.ErrCategoryNotFound,
		domain.ErrMenuItemNotFound,
		domain.ErrOrderNotFound,
		domain.ErrStaffNotFound,
		domain.ErrInvitationNotFound,
	}
	conflict = []error{
		domain.ErrEmailAlreadyExists,
		domain.ErrProfileAlreadyExists,
		domain.ErrCanteenAlreadyLinked,
		domain.ErrCanteenNotSetUp,
		domain.ErrOrderTerminal,
		domain.ErrOrderItemsNotPersisted,
		domain.ErrCategoryInUse,
		domain.ErrOrderStatusChanged,
	}
	gone = []error{
		domain.ErrInvitationExpired,
	}
)

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// StatusFor maps domain errors onto HTTP status codes. Anything unknown is a
// 500.
func StatusFor(err error) int {
	var consumed *domain.InvitationConsumedError
	var validation validator.ValidationErrors
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &consumed):
		return fiber.StatusGone
	case errors.As(err, &validation):
		return fiber.StatusBadRequest
	case matches(err, gone):
		return fiber.StatusGone
	case matches(err, unauthorized):
		return fiber.StatusUnauthorized
	case matches(err, forbidden):
		return fiber.StatusForbidden
	case matches(err, notFound):
		return fiber.StatusNotFound
	case matches(err, conflict):
		return fiber.StatusConflict
	case matches(err, badRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, storage.ErrStorageUnavailable), errors.Is(err, domain.ErrOAuthNotConfigured):
		return fiber.StatusServiceUnavailable
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
