package handlers

import (
	"canteen-backend/domain"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/dashboard"

	"github.com/gofiber/fiber/v2"
)

type (
	DashboardHandler interface {
		GetDashboard(c *fiber.Ctx) error
	}

	dashboardHandler struct {
		dashboardService dashboard.DashboardService
	}
)

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *dashboardHandler) GetDashboard(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	res, err := h.dashboardService.GetDashboard(c.Context(), session)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetDashboard, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
