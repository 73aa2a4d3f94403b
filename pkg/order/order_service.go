package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"
	"canteen-backend/internal/feed"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	OrderService interface {
		CreateOrder(ctx context.Context, session domain.Session, req domain.CreateOrderRequest) (domain.OrderResponse, error)
		AdvanceStatus(ctx context.Context, session domain.Session, orderID string, target domain.OrderStatus) (domain.OrderResponse, error)
		ListOrders(ctx context.Context, session domain.Session, filter domain.OrderFilter, page, limit int) ([]domain.OrderResponse, int64, error)
		GetOrder(ctx context.Context, session domain.Session, orderID string) (domain.OrderResponse, error)
		Changes(ctx context.Context, session domain.Session) (<-chan domain.OrderChangeEvent, func(), error)
	}

	orderService struct {
		orderRepository OrderRepository
		feed            feed.Feed
		now             func() time.Time
	}
)

func NewOrderService(orderRepository OrderRepository, changeFeed feed.Feed) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		feed:            changeFeed,
		now:             time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, session domain.Session, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	if !session.HasCanteen() {
		return domain.OrderResponse{}, domain.ErrCanteenNotSetUp
	}
	canteenID, err := uuid.Parse(session.CanteenID)
	if err != nil {
		return domain.OrderResponse{}, domain.ErrParseUUID
	}
	if len(req.Items) == 0 {
		return domain.OrderResponse{}, domain.ErrEmptyOrder
	}
	if !req.OrderType.Valid() {
		return domain.OrderResponse{}, domain.ErrInvalidOrderType
	}
	if !req.PaymentMethod.Valid() {
		return domain.OrderResponse{}, domain.ErrInvalidPaymentMethod
	}

	ids := make([]string, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return domain.OrderResponse{}, domain.ErrInvalidQuantity
		}
		if _, err := uuid.Parse(line.MenuItemID); err != nil {
			return domain.OrderResponse{}, domain.ErrMenuItemUnavailable
		}
		ids = append(ids, line.MenuItemID)
	}

	menuItems, err := s.orderRepository.GetMenuItemsByIDs(ctx, session.CanteenID, ids)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	byID := make(map[string]*entities.MenuItem, len(menuItems))
	prices := make(map[string]float64, len(menuItems))
	for _, item := range menuItems {
		if item.CanteenID != canteenID || !item.IsActive || !item.IsAvailable {
			continue
		}
		byID[item.ID.String()] = item
		prices[item.ID.String()] = item.Price
	}

	items := make([]*entities.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		menuItem, ok := byID[line.MenuItemID]
		if !ok {
			return domain.OrderResponse{}, domain.ErrMenuItemUnavailable
		}
		items = append(items, &entities.OrderItem{
			ID:                  uuid.New(),
			MenuItemID:          menuItem.ID,
			Quantity:            line.Quantity,
			UnitPrice:           menuItem.Price,
			TotalPrice:          fromCents(lineTotalCents(line.Quantity, menuItem.Price)),
			SpecialInstructions: optional(line.SpecialInstructions),
			MenuItem:            menuItem,
		})
	}

	order := &entities.Order{
		ID:            uuid.New(),
		CanteenID:     canteenID,
		CustomerName:  optional(req.Name),
		CustomerPhone: optional(req.Phone),
		OrderType:     req.OrderType,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.OrderStatusPending,
		TotalAmount:   ComputeOrderTotal(req.Items, prices),
		Notes:         optional(req.Notes),
	}
	if err := s.orderRepository.CreateOrderWithItems(ctx, order, items); err != nil {
		return domain.OrderResponse{}, err
	}
	order.OrderItems = items

	s.publish(ctx, domain.OrderChangeInsert, order)
	return ToOrderResponse(order), nil
}

func (s *orderService) AdvanceStatus(ctx context.Context, session domain.Session, orderID string, target domain.OrderStatus) (domain.OrderResponse, error) {
	if !session.HasCanteen() {
		return domain.OrderResponse{}, domain.ErrCanteenNotSetUp
	}
	order, err := s.getOrder(ctx, session, orderID)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if err := checkTransition(order.Status, target); err != nil {
		return domain.OrderResponse{}, err
	}

	from := order.Status
	order.Status = target
	if target == domain.OrderStatusCompleted {
		servedBy, err := uuid.Parse(session.Identity.UserID)
		if err != nil {
			return domain.OrderResponse{}, domain.ErrParseUUID
		}
		completedAt := s.now()
		order.ServedBy = &servedBy
		order.CompletedAt = &completedAt
	}

	if err := s.orderRepository.UpdateOrderStatus(ctx, order, from); err != nil {
		return domain.OrderResponse{}, err
	}

	s.publish(ctx, domain.OrderChangeUpdate, order)
	return ToOrderResponse(order), nil
}

func (s *orderService) ListOrders(ctx context.Context, session domain.Session, filter domain.OrderFilter, page, limit int) ([]domain.OrderResponse, int64, error) {
	if !session.HasCanteen() {
		return nil, 0, domain.ErrCanteenNotSetUp
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, domain.ErrUnknownOrderStatus
	}
	filter.Search = strings.TrimSpace(filter.Search)

	orders, count, err := s.orderRepository.GetOrders(ctx, session.CanteenID, filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		res = append(res, ToOrderResponse(order))
	}
	return res, count, nil
}

func (s *orderService) GetOrder(ctx context.Context, session domain.Session, orderID string) (domain.OrderResponse, error) {
	if !session.HasCanteen() {
		return domain.OrderResponse{}, domain.ErrCanteenNotSetUp
	}
	order, err := s.getOrder(ctx, session, orderID)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	return ToOrderResponse(order), nil
}

func (s *orderService) Changes(ctx context.Context, session domain.Session) (<-chan domain.OrderChangeEvent, func(), error) {
	if !session.HasCanteen() {
		return nil, nil, domain.ErrCanteenNotSetUp
	}
	return s.feed.Subscribe(ctx, session.CanteenID)
}

func (s *orderService) getOrder(ctx context.Context, session domain.Session, orderID string) (*entities.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.orderRepository.GetOrderByID(ctx, session.CanteenID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// publish reports a committed write to the change feed. A failed publish is
// logged only; the write already happened.
func (s *orderService) publish(ctx context.Context, kind domain.OrderChangeType, order *entities.Order) {
	event := domain.OrderChangeEvent{
		Table:     domain.OrdersTable,
		Type:      kind,
		CanteenID: order.CanteenID.String(),
		OrderID:   order.ID.String(),
		Status:    order.Status,
		At:        s.now(),
	}
	if err := s.feed.Publish(ctx, event); err != nil {
		log.Errorf("failed to publish %s for order %s: %v", kind, order.ID, err)
	}
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func ToOrderResponse(order *entities.Order) domain.OrderResponse {
	res := domain.OrderResponse{
		ID:            order.ID.String(),
		CanteenID:     order.CanteenID.String(),
		CustomerName:  deref(order.CustomerName),
		CustomerPhone: deref(order.CustomerPhone),
		OrderType:     order.OrderType,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		Notes:         deref(order.Notes),
		Items:         make([]domain.OrderItemResponse, 0, len(order.OrderItems)),
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		CompletedAt:   order.CompletedAt,
	}
	if order.ServedBy != nil {
		res.ServedBy = order.ServedBy.String()
	}
	for _, item := range order.OrderItems {
		line := domain.OrderItemResponse{
			ID:                  item.ID.String(),
			MenuItemID:          item.MenuItemID.String(),
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			TotalPrice:          item.TotalPrice,
			SpecialInstructions: deref(item.SpecialInstructions),
		}
		if item.MenuItem != nil {
			line.MenuItemName = item.MenuItem.Name
			line.PreparationTime = item.MenuItem.PreparationTime
		}
		res.Items = append(res.Items, line)
	}
	return res
}
