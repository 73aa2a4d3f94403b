package dashboard

import (
	"context"
	"testing"
	"time"

	"canteen-backend/domain"
	"canteen-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthPercentage(t *testing.T) {
	cases := []struct {
		current, previous, want float64
	}{
		{150, 100, 50},
		{50, 100, -50},
		{100, 100, 0},
		{10, 0, 100},
		{0, 0, 0},
		{1, 3, -66.67},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GrowthPercentage(tc.current, tc.previous), "%v vs %v", tc.current, tc.previous)
	}
}

func TestAverageOrderValue(t *testing.T) {
	assert.Equal(t, 115.0, AverageOrderValue(345, 3))
	assert.Equal(t, 33.33, AverageOrderValue(100, 3))
	assert.Zero(t, AverageOrderValue(0, 0))
}

func TestMonthBounds(t *testing.T) {
	current, previous, next := MonthBounds(time.Date(2026, 1, 17, 15, 4, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), current)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), previous)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), next)
}

type fakeDashboardRepository struct {
	totals  map[time.Time]PeriodTotals
	pending int64
	items   int64
	popular []domain.PopularItem
	recent  []*entities.Order
}

func (r *fakeDashboardRepository) GetPeriodTotals(_ context.Context, _ string, from, _ time.Time) (PeriodTotals, error) {
	return r.totals[from], nil
}

func (r *fakeDashboardRepository) CountPendingOrders(context.Context, string) (int64, error) {
	return r.pending, nil
}

func (r *fakeDashboardRepository) CountActiveMenuItems(context.Context, string) (int64, error) {
	return r.items, nil
}

func (r *fakeDashboardRepository) GetPopularItems(context.Context, string, time.Time, int) ([]domain.PopularItem, error) {
	return r.popular, nil
}

func (r *fakeDashboardRepository) GetRecentOrders(context.Context, string, int) ([]*entities.Order, error) {
	return r.recent, nil
}

func TestGetDashboard(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	current, previous, _ := MonthBounds(now)
	name := "Ankit"
	repo := &fakeDashboardRepository{
		totals: map[time.Time]PeriodTotals{
			current:  {Revenue: 345, Orders: 3},
			previous: {Revenue: 300, Orders: 4},
		},
		pending: 1,
		items:   6,
		popular: []domain.PopularItem{{Name: "Masala Chai", OrderCount: 6}},
		recent: []*entities.Order{{
			ID:           uuid.New(),
			CustomerName: &name,
			Status:       domain.OrderStatusCompleted,
			TotalAmount:  165,
			OrderItems:   []*entities.OrderItem{{Quantity: 1}, {Quantity: 2}},
		}},
	}
	svc := NewDashboardService(repo).(*dashboardService)
	svc.now = func() time.Time { return now }

	res, err := svc.GetDashboard(context.Background(), domain.Session{CanteenID: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, 345.0, res.Stats.TotalRevenueMonth)
	assert.EqualValues(t, 3, res.Stats.TotalOrdersMonth)
	assert.Equal(t, 15.0, res.Stats.RevenueGrowthPercentage)
	assert.Equal(t, -25.0, res.Stats.OrdersGrowthPercentage)
	assert.Equal(t, 115.0, res.Stats.AvgOrderValue)
	assert.EqualValues(t, 1, res.Stats.PendingOrdersTotal)
	assert.EqualValues(t, 6, res.Stats.MenuItemsTotal)
	require.Len(t, res.RecentOrders, 1)
	assert.Equal(t, 3, res.RecentOrders[0].ItemCount)
	assert.Equal(t, "Ankit", res.RecentOrders[0].CustomerName)
}

func TestGetDashboardRequiresCanteen(t *testing.T) {
	_, err := NewDashboardService(&fakeDashboardRepository{}).GetDashboard(context.Background(), domain.Session{Role: domain.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrCanteenNotSetUp)
}
