package handlers

import (
	"canteen-backend/domain"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/staff"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	StaffHandler interface {
		GetStaff(c *fiber.Ctx) error
		UpdateStaff(c *fiber.Ctx) error
		SetStaffActive(c *fiber.Ctx) error
	}

	staffHandler struct {
		staffService staff.StaffService
		validator    *validator.Validate
	}
)

func NewStaffHandler(staffService staff.StaffService, validator *validator.Validate) StaffHandler {
	return &staffHandler{
		staffService: staffService,
		validator:    validator,
	}
}

func (h *staffHandler) GetStaff(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	filter := domain.StaffFilter{
		Role:   domain.Role(c.Query("role")),
		Search: c.Query("search"),
	}

	res, err := h.staffService.ListStaff(c.Context(), session, filter)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetStaff, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStaff)
}

func (h *staffHandler) UpdateStaff(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.UpdateStaffRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStaff, err)
	}

	res, err := h.staffService.UpdateStaff(c.Context(), session, c.Params("id"), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateStaff, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateStaff)
}

func (h *staffHandler) SetStaffActive(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.SetStaffActiveRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetStaffActive, err)
	}

	res, err := h.staffService.SetStaffActive(c.Context(), session, c.Params("id"), *req.IsActive)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedSetStaffActive, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetStaffActive)
}
