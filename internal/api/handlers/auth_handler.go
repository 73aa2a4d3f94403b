package handlers

import (
	"canteen-backend/domain"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AuthHandler interface {
		SignUp(c *fiber.Ctx) error
		SignIn(c *fiber.Ctx) error
		SignOut(c *fiber.Ctx) error
		RefreshSession(c *fiber.Ctx) error
		ConfirmEmail(c *fiber.Ctx) error
		GetSession(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		OAuthRedirect(c *fiber.Ctx) error
		OAuthCallback(c *fiber.Ctx) error
	}

	authHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewAuthHandler(userService user.UserService, validator *validator.Validate) AuthHandler {
	return &authHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *authHandler) SignUp(c *fiber.Ctx) error {
	req := new(domain.SignUpRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignUp, err)
	}

	res, err := h.userService.SignUp(c.Context(), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedSignUp, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSignUp)
}

func (h *authHandler) SignIn(c *fiber.Ctx) error {
	req := new(domain.SignInRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSignIn, err)
	}

	res, err := h.userService.SignIn(c.Context(), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedSignIn, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSignIn)
}

func (h *authHandler) SignOut(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	if err := h.userService.SignOut(c.Context(), session.ID); err != nil {
		return presenters.Fail(c, domain.MessageFailedSignOut, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSignOut)
}

func (h *authHandler) RefreshSession(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	res, err := h.userService.RefreshSession(c.Context(), session.ID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedRefreshSession, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRefreshSession)
}

func (h *authHandler) ConfirmEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedConfirmEmail, domain.ErrTokenNotFound)
	}
	if err := h.userService.ConfirmEmail(c.Context(), token); err != nil {
		return presenters.Fail(c, domain.MessageFailedConfirmEmail, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessConfirmEmail)
}

func (h *authHandler) GetSession(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	return presenters.SuccessResponse(c, session, fiber.StatusOK, domain.MessageSuccessGetSession)
}

func (h *authHandler) GetUser(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetUser, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUser)
}

func (h *authHandler) OAuthRedirect(c *fiber.Ctx) error {
	url, err := h.userService.OAuthRedirectURL(c.Context())
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedOAuth, err)
	}
	if c.Query("redirect") == "true" {
		return c.Redirect(url, fiber.StatusTemporaryRedirect)
	}
	return presenters.SuccessResponse(c, domain.OAuthRedirectResponse{URL: url}, fiber.StatusOK, domain.MessageSuccessGetSession)
}

func (h *authHandler) OAuthCallback(c *fiber.Ctx) error {
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedOAuth, domain.ErrOAuthStateMismatch)
	}
	res, err := h.userService.OAuthCallback(c.Context(), state, code)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedOAuth, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSignIn)
}
