package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"
	"canteen-backend/internal/feed"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeOrderRepository struct {
	menuItems    map[string]*entities.MenuItem
	orders       map[string]*entities.Order
	createErr    error
	creates      int
	statusWrites int

	// beforeStatusWrite runs between the service's read and its write
	beforeStatusWrite func(stored *entities.Order)
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{
		menuItems: map[string]*entities.MenuItem{},
		orders:    map[string]*entities.Order{},
	}
}

func (r *fakeOrderRepository) addMenuItem(canteenID uuid.UUID, name string, price float64, available bool) *entities.MenuItem {
	item := &entities.MenuItem{
		ID:          uuid.New(),
		CanteenID:   canteenID,
		Name:        name,
		Price:       price,
		IsActive:    true,
		IsAvailable: available,
	}
	r.menuItems[item.ID.String()] = item
	return item
}

func (r *fakeOrderRepository) GetMenuItemsByIDs(_ context.Context, canteenID string, ids []string) ([]*entities.MenuItem, error) {
	var out []*entities.MenuItem
	for _, id := range ids {
		if item, ok := r.menuItems[id]; ok && item.CanteenID.String() == canteenID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeOrderRepository) CreateOrderWithItems(_ context.Context, order *entities.Order, items []*entities.OrderItem) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	for _, item := range items {
		item.OrderID = order.ID
	}
	stored := *order
	stored.OrderItems = items
	r.orders[order.ID.String()] = &stored
	return nil
}

func (r *fakeOrderRepository) GetOrderByID(_ context.Context, canteenID, id string) (*entities.Order, error) {
	order, ok := r.orders[id]
	if !ok || order.CanteenID.String() != canteenID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *order
	return &cp, nil
}

func (r *fakeOrderRepository) GetOrders(_ context.Context, canteenID string, filter domain.OrderFilter, _, _ int) ([]*entities.Order, int64, error) {
	var out []*entities.Order
	for _, order := range r.orders {
		if order.CanteenID.String() != canteenID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		out = append(out, order)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepository) UpdateOrderStatus(_ context.Context, order *entities.Order, from domain.OrderStatus) error {
	r.statusWrites++
	stored := r.orders[order.ID.String()]
	if r.beforeStatusWrite != nil {
		r.beforeStatusWrite(stored)
	}
	if stored.Status != from {
		return domain.ErrOrderStatusChanged
	}
	stored.Status = order.Status
	stored.ServedBy = order.ServedBy
	stored.CompletedAt = order.CompletedAt
	return nil
}

type orderFixture struct {
	repo    *fakeOrderRepository
	feed    feed.Feed
	svc     OrderService
	session domain.Session
	canteen uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	canteenID := uuid.New()
	repo := newFakeOrderRepository()
	f := feed.NewLocalFeed()
	t.Cleanup(func() { _ = f.Close() })
	return &orderFixture{
		repo: repo,
		feed: f,
		svc:  NewOrderService(repo, f),
		session: domain.Session{
			ID:        "session",
			Identity:  domain.Identity{UserID: uuid.NewString()},
			ProfileID: uuid.NewString(),
			Role:      domain.RoleCashier,
			CanteenID: canteenID.String(),
			IsActive:  true,
		},
		canteen: canteenID,
	}
}

func (f *orderFixture) request(items ...domain.OrderLineRequest) domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		CustomerInfo:  domain.CustomerInfo{Name: "Walk-in"},
		OrderType:     domain.OrderTypeDineIn,
		PaymentMethod: domain.PaymentCash,
		Items:         items,
	}
}

func receive(t *testing.T, ch <-chan domain.OrderChangeEvent) domain.OrderChangeEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no change event delivered")
	}
	return domain.OrderChangeEvent{}
}

func TestCreateOrderThenAdvance(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	biryani := f.repo.addMenuItem(f.canteen, "Chicken Biryani", 150, true)
	samosa := f.repo.addMenuItem(f.canteen, "Samosa", 15, true)

	events, cancel, err := f.svc.Changes(ctx, f.session)
	require.NoError(t, err)
	defer cancel()

	created, err := f.svc.CreateOrder(ctx, f.session, f.request(
		domain.OrderLineRequest{MenuItemID: biryani.ID.String(), Quantity: 1},
		domain.OrderLineRequest{MenuItemID: samosa.ID.String(), Quantity: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, 165.0, created.TotalAmount)
	assert.Equal(t, domain.OrderStatusPending, created.Status)
	require.Len(t, created.Items, 2)
	assert.Equal(t, "Chicken Biryani", created.Items[0].MenuItemName)
	assert.Equal(t, 150.0, created.Items[0].TotalPrice)

	ev := receive(t, events)
	assert.Equal(t, domain.OrderChangeInsert, ev.Type)
	assert.Equal(t, created.ID, ev.OrderID)
	assert.Equal(t, domain.OrdersTable, ev.Table)

	preparing, err := f.svc.AdvanceStatus(ctx, f.session, created.ID, domain.OrderStatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, preparing.Status)
	assert.Equal(t, domain.OrderStatusPreparing, receive(t, events).Status)

	_, err = f.svc.AdvanceStatus(ctx, f.session, created.ID, domain.OrderStatusPending)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Equal(t, 1, f.repo.statusWrites)
}

func TestCompletingRecordsServingStaff(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	chai := f.repo.addMenuItem(f.canteen, "Masala Chai", 10, true)

	created, err := f.svc.CreateOrder(ctx, f.session, f.request(domain.OrderLineRequest{MenuItemID: chai.ID.String(), Quantity: 2}))
	require.NoError(t, err)

	for _, status := range []domain.OrderStatus{domain.OrderStatusPreparing, domain.OrderStatusReady} {
		res, err := f.svc.AdvanceStatus(ctx, f.session, created.ID, status)
		require.NoError(t, err)
		assert.Empty(t, res.ServedBy)
	}

	done, err := f.svc.AdvanceStatus(ctx, f.session, created.ID, domain.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, f.session.Identity.UserID, done.ServedBy)
	assert.NotNil(t, done.CompletedAt)
	assert.Equal(t, 20.0, done.TotalAmount)

	_, err = f.svc.AdvanceStatus(ctx, f.session, created.ID, domain.OrderStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrOrderTerminal)
}

func TestPriceSnapshotSurvivesMenuChanges(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	sandwich := f.repo.addMenuItem(f.canteen, "Veg Sandwich", 40, true)

	created, err := f.svc.CreateOrder(ctx, f.session, f.request(domain.OrderLineRequest{MenuItemID: sandwich.ID.String(), Quantity: 1}))
	require.NoError(t, err)

	sandwich.Price = 55
	got, err := f.svc.GetOrder(ctx, f.session, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 40.0, got.Items[0].UnitPrice)
	assert.Equal(t, 40.0, got.TotalAmount)
}

func TestCreateOrderRejections(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	available := f.repo.addMenuItem(f.canteen, "Samosa", 15, true)
	soldOut := f.repo.addMenuItem(f.canteen, "Fresh Lime Soda", 25, false)
	foreign := f.repo.addMenuItem(uuid.New(), "Elsewhere", 99, true)

	cases := []struct {
		name string
		req  domain.CreateOrderRequest
		err  error
	}{
		{"empty", f.request(), domain.ErrEmptyOrder},
		{"zero quantity", f.request(domain.OrderLineRequest{MenuItemID: available.ID.String(), Quantity: 0}), domain.ErrInvalidQuantity},
		{"unavailable", f.request(domain.OrderLineRequest{MenuItemID: soldOut.ID.String(), Quantity: 1}), domain.ErrMenuItemUnavailable},
		{"other canteen", f.request(domain.OrderLineRequest{MenuItemID: foreign.ID.String(), Quantity: 1}), domain.ErrMenuItemUnavailable},
		{"unknown", f.request(
			domain.OrderLineRequest{MenuItemID: available.ID.String(), Quantity: 1},
			domain.OrderLineRequest{MenuItemID: uuid.NewString(), Quantity: 1},
		), domain.ErrMenuItemUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateOrder(ctx, f.session, tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	bad := f.request(domain.OrderLineRequest{MenuItemID: available.ID.String(), Quantity: 1})
	bad.OrderType = "drive_through"
	_, err := f.svc.CreateOrder(ctx, f.session, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidOrderType)

	assert.Zero(t, f.repo.creates)
}

func TestCreateOrderSurfacesPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	item := f.repo.addMenuItem(f.canteen, "Samosa", 15, true)
	f.repo.createErr = errors.Join(domain.ErrOrderItemsNotPersisted, errors.New("insert failed"))

	_, err := f.svc.CreateOrder(ctx, f.session, f.request(domain.OrderLineRequest{MenuItemID: item.ID.String(), Quantity: 1}))
	assert.ErrorIs(t, err, domain.ErrOrderItemsNotPersisted)
	assert.Empty(t, f.repo.orders)
}

func TestOrdersRequireCanteen(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	session := f.session
	session.CanteenID = ""

	_, err := f.svc.CreateOrder(ctx, session, f.request())
	assert.ErrorIs(t, err, domain.ErrCanteenNotSetUp)
	_, _, err = f.svc.ListOrders(ctx, session, domain.OrderFilter{}, 1, 20)
	assert.ErrorIs(t, err, domain.ErrCanteenNotSetUp)
	_, _, err = f.svc.Changes(ctx, session)
	assert.ErrorIs(t, err, domain.ErrCanteenNotSetUp)
}

func TestGetOrderFromAnotherCanteenIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	item := f.repo.addMenuItem(f.canteen, "Samosa", 15, true)
	created, err := f.svc.CreateOrder(ctx, f.session, f.request(domain.OrderLineRequest{MenuItemID: item.ID.String(), Quantity: 1}))
	require.NoError(t, err)

	other := f.session
	other.CanteenID = uuid.NewString()
	_, err = f.svc.GetOrder(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	_, err = f.svc.AdvanceStatus(ctx, other, created.ID, domain.OrderStatusPreparing)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestListOrdersFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	item := f.repo.addMenuItem(f.canteen, "Samosa", 15, true)
	first, err := f.svc.CreateOrder(ctx, f.session, f.request(domain.OrderLineRequest{MenuItemID: item.ID.String(), Quantity: 1}))
	require.NoError(t, err)
	_, err = f.svc.CreateOrder(ctx, f.session, f.request(domain.OrderLineRequest{MenuItemID: item.ID.String(), Quantity: 2}))
	require.NoError(t, err)
	_, err = f.svc.AdvanceStatus(ctx, f.session, first.ID, domain.OrderStatusCancelled)
	require.NoError(t, err)

	pending, total, err := f.svc.ListOrders(ctx, f.session, domain.OrderFilter{Status: domain.OrderStatusPending}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, 30.0, pending[0].TotalAmount)

	_, _, err = f.svc.ListOrders(ctx, f.session, domain.OrderFilter{Status: "lost"}, 1, 20)
	assert.ErrorIs(t, err, domain.ErrUnknownOrderStatus)
}

func TestConcurrentTransitionKeepsTerminalStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	chai := f.repo.addMenuItem(f.canteen, "Masala Chai", 10, true)

	created, err := f.svc.CreateOrder(ctx, f.session, f.request(domain.OrderLineRequest{MenuItemID: chai.ID.String(), Quantity: 1}))
	require.NoError(t, err)
	for _, status := range []domain.OrderStatus{domain.OrderStatusPreparing, domain.OrderStatusReady} {
		_, err := f.svc.AdvanceStatus(ctx, f.session, created.ID, status)
		require.NoError(t, err)
	}

	// another cashier cancels while this request is completing
	f.repo.beforeStatusWrite = func(stored *entities.Order) {
		stored.Status = domain.OrderStatusCancelled
	}
	_, err = f.svc.AdvanceStatus(ctx, f.session, created.ID, domain.OrderStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrOrderStatusChanged)

	stored := f.repo.orders[created.ID]
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
	assert.Nil(t, stored.ServedBy)
	assert.Nil(t, stored.CompletedAt)

	f.repo.beforeStatusWrite = nil
	_, err = f.svc.AdvanceStatus(ctx, f.session, created.ID, domain.OrderStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrOrderTerminal)
}
