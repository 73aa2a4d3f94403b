package handlers

import (
	"canteen-backend/domain"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/canteen"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CanteenHandler interface {
		CreateCanteen(c *fiber.Ctx) error
		SeedSampleData(c *fiber.Ctx) error
		GetCanteen(c *fiber.Ctx) error
		UpdateCanteen(c *fiber.Ctx) error
		DeleteCanteen(c *fiber.Ctx) error
	}

	canteenHandler struct {
		canteenService canteen.CanteenService
		validator      *validator.Validate
	}
)

func NewCanteenHandler(canteenService canteen.CanteenService, validator *validator.Validate) CanteenHandler {
	return &canteenHandler{
		canteenService: canteenService,
		validator:      validator,
	}
}

func (h *canteenHandler) CreateCanteen(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.CanteenRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCanteen, err)
	}

	res, err := h.canteenService.CreateCanteen(c.Context(), session, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateCanteen, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCanteen)
}

func (h *canteenHandler) SeedSampleData(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	res, err := h.canteenService.SeedSampleData(c.Context(), session)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedSeedCanteen, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSeedCanteen)
}

func (h *canteenHandler) GetCanteen(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	res, err := h.canteenService.GetCanteen(c.Context(), session)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetCanteen, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCanteen)
}

func (h *canteenHandler) UpdateCanteen(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.UpdateCanteenRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCanteen, err)
	}

	res, err := h.canteenService.UpdateCanteen(c.Context(), session, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateCanteen, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCanteen)
}

func (h *canteenHandler) DeleteCanteen(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	if err := h.canteenService.DeleteCanteen(c.Context(), session); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteCanteen, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteCanteen)
}
