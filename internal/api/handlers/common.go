package handlers

import (
	"strconv"

	"canteen-backend/domain"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

func currentSession(c *fiber.Ctx) (domain.Session, bool) {
	return middleware.SessionFrom(c)
}

func unauthenticated(c *fiber.Ctx) error {
	return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MesaageUserNotAllowed, domain.ErrUnauthenticated)
}

func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", strconv.Itoa(defaultPage)))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
