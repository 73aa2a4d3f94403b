package handlers

import (
	"canteen-backend/domain"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/invitation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	InvitationHandler interface {
		GetInvitation(c *fiber.Ctx) error
		AcceptInvitation(c *fiber.Ctx) error
		CreateInvitation(c *fiber.Ctx) error
	}

	invitationHandler struct {
		invitationService invitation.InvitationService
		validator         *validator.Validate
	}
)

func NewInvitationHandler(invitationService invitation.InvitationService, validator *validator.Validate) InvitationHandler {
	return &invitationHandler{
		invitationService: invitationService,
		validator:         validator,
	}
}

func (h *invitationHandler) GetInvitation(c *fiber.Ctx) error {
	res, err := h.invitationService.FetchInvitation(c.Context(), c.Params("token"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetInvitation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetInvitation)
}

func (h *invitationHandler) AcceptInvitation(c *fiber.Ctx) error {
	req := new(domain.AcceptInvitationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAcceptInvitation, err)
	}

	res, err := h.invitationService.AcceptInvitation(c.Context(), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedAcceptInvitation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAcceptInvitation)
}

func (h *invitationHandler) CreateInvitation(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.CreateInvitationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateInvitation, err)
	}

	res, err := h.invitationService.CreateInvitation(c.Context(), session, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateInvitation, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateInvitation)
}
