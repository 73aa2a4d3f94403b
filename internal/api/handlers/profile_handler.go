package handlers

import (
	"canteen-backend/domain"
	"canteen-backend/internal/access"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/profile"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProfileHandler interface {
		GetProfile(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
		GetPages(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
		enforcer       access.Enforcer
		validator      *validator.Validate
	}
)

func NewProfileHandler(profileService profile.ProfileService, enforcer access.Enforcer, validator *validator.Validate) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
		enforcer:       enforcer,
		validator:      validator,
	}
}

func (h *profileHandler) GetProfile(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	res, err := h.profileService.GetProfile(c.Context(), session)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) UpdateProfile(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.UpdateProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProfile, err)
	}

	res, err := h.profileService.UpdateOwnProfile(c.Context(), session, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProfile)
}

func (h *profileHandler) GetPages(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"role":          session.Role,
		"unprovisioned": session.Unprovisioned(),
		"pages":         h.enforcer.AllowedPages(session.Role),
	}, fiber.StatusOK, domain.MessageSuccessGetPages)
}
