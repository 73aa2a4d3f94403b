package presenters

import (
	"errors"
	"fmt"
	"testing"

	"canteen-backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, fiber.StatusOK},
		{domain.ErrValidation, fiber.StatusBadRequest},
		{domain.ErrIllegalTransition, fiber.StatusBadRequest},
		{domain.ErrSessionRevoked, fiber.StatusUnauthorized},
		{domain.ErrPermissionDenied, fiber.StatusForbidden},
		{domain.ErrOrderNotFound, fiber.StatusNotFound},
		{domain.ErrCanteenNotSetUp, fiber.StatusConflict},
		{domain.ErrCategoryInUse, fiber.StatusConflict},
		{domain.ErrOrderStatusChanged, fiber.StatusConflict},
		{domain.ErrInvitationExpired, fiber.StatusGone},
		{&domain.InvitationConsumedError{Status: domain.InvitationAccepted}, fiber.StatusGone},
		{fmt.Errorf("%w: %w", domain.ErrProfileResolution, domain.ErrUnauthenticated), fiber.StatusUnauthorized},
		{fiber.ErrUnprocessableEntity, fiber.StatusUnprocessableEntity},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), "%v", tc.err)
	}
}
