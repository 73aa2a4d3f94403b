package handlers

import (
	"canteen-backend/domain"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/menu"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MenuHandler interface {
		GetCategories(c *fiber.Ctx) error
		CreateCategory(c *fiber.Ctx) error
		UpdateCategory(c *fiber.Ctx) error
		DeleteCategory(c *fiber.Ctx) error

		GetMenuItems(c *fiber.Ctx) error
		CreateMenuItem(c *fiber.Ctx) error
		UpdateMenuItem(c *fiber.Ctx) error
		DeleteMenuItem(c *fiber.Ctx) error
		UploadMenuItemImage(c *fiber.Ctx) error
	}

	menuHandler struct {
		menuService menu.MenuService
		validator   *validator.Validate
	}
)

func NewMenuHandler(menuService menu.MenuService, validator *validator.Validate) MenuHandler {
	return &menuHandler{
		menuService: menuService,
		validator:   validator,
	}
}

func (h *menuHandler) GetCategories(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	res, err := h.menuService.ListCategories(c.Context(), session)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetCategories, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCategories)
}

func (h *menuHandler) CreateCategory(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.CategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateCategory, err)
	}

	res, err := h.menuService.CreateCategory(c.Context(), session, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateCategory)
}

func (h *menuHandler) UpdateCategory(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.CategoryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCategory, err)
	}

	res, err := h.menuService.UpdateCategory(c.Context(), session, c.Params("id"), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateCategory, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateCategory)
}

func (h *menuHandler) DeleteCategory(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	if err := h.menuService.DeleteCategory(c.Context(), session, c.Params("id")); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteCategory, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteCategory)
}

func (h *menuHandler) GetMenuItems(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	filter := domain.MenuItemFilter{
		CategoryID:    c.Query("category_id"),
		Search:        c.Query("search"),
		AvailableOnly: c.QueryBool("available", false),
	}

	res, err := h.menuService.ListMenuItems(c.Context(), session, filter)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetMenuItems, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMenuItems)
}

func (h *menuHandler) CreateMenuItem(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.MenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateMenuItem, err)
	}

	res, err := h.menuService.CreateMenuItem(c.Context(), session, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateMenuItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateMenuItem)
}

func (h *menuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.MenuItemRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateMenuItem, err)
	}

	res, err := h.menuService.UpdateMenuItem(c.Context(), session, c.Params("id"), *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateMenuItem, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateMenuItem)
}

func (h *menuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	if err := h.menuService.DeleteMenuItem(c.Context(), session, c.Params("id")); err != nil {
		return presenters.Fail(c, domain.MessageFailedDeleteMenuItem, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteMenuItem)
}

func (h *menuHandler) UploadMenuItemImage(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	req := domain.UploadMenuItemImageRequest{
		MenuItemID: c.FormValue("menu_item_id"),
		Image:      image,
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.menuService.UploadMenuItemImage(c.Context(), session, req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}
