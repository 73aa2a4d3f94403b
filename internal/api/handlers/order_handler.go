package handlers

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"canteen-backend/domain"
	"canteen-backend/internal/api/presenters"
	"canteen-backend/pkg/order"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/valyala/fasthttp"
)

const streamKeepAlive = 20 * time.Second

type (
	OrderHandler interface {
		GetOrders(c *fiber.Ctx) error
		GetOrder(c *fiber.Ctx) error
		CreateOrder(c *fiber.Ctx) error
		UpdateOrderStatus(c *fiber.Ctx) error
		StreamOrders(c *fiber.Ctx) error
	}

	orderHandler struct {
		orderService order.OrderService
		validator    *validator.Validate
	}
)

func NewOrderHandler(orderService order.OrderService, validator *validator.Validate) OrderHandler {
	return &orderHandler{
		orderService: orderService,
		validator:    validator,
	}
}

func (h *orderHandler) GetOrders(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	page, limit := pagination(c)
	filter := domain.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Search: c.Query("search"),
	}

	orders, total, err := h.orderService.ListOrders(c.Context(), session, filter, page, limit)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetOrders, err)
	}
	return presenters.SuccessResponse(c, fiber.Map{
		"orders":     orders,
		"pagination": domain.NewPagination(page, limit, total),
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *orderHandler) GetOrder(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	res, err := h.orderService.GetOrder(c.Context(), session, c.Params("id"))
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedGetOrder, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetOrder)
}

func (h *orderHandler) CreateOrder(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.CreateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateOrder, err)
	}

	res, err := h.orderService.CreateOrder(c.Context(), session, *req)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedCreateOrder, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateOrder)
}

func (h *orderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}
	req := new(domain.UpdateOrderStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateStatus, err)
	}

	res, err := h.orderService.AdvanceStatus(c.Context(), session, c.Params("id"), req.Status)
	if err != nil {
		return presenters.Fail(c, domain.MessageFailedUpdateStatus, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateStatus)
}

// StreamOrders pushes order changes of the caller's canteen as server-sent events.
func (h *orderHandler) StreamOrders(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthenticated(c)
	}

	// The stream outlives this handler, so it cannot use the request context.
	ctx, cancel := context.WithCancel(context.Background())
	events, unsubscribe, err := h.orderService.Changes(ctx, session)
	if err != nil {
		cancel()
		return presenters.Fail(c, domain.MessageFailedOrderStream, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	encode := c.App().Config().JSONEncoder
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer unsubscribe()

		ticker := time.NewTicker(streamKeepAlive)
		defer ticker.Stop()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case event, open := <-events:
				if !open {
					return
				}
				data, err := encode(event)
				if err != nil {
					log.Errorf("encode order event %s: %v", event.OrderID, err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
