package dashboard

import (
	"context"
	"time"

	"canteen-backend/domain"
)

type (
	DashboardService interface {
		GetDashboard(ctx context.Context, session domain.Session) (domain.DashboardResponse, error)
	}

	dashboardService struct {
		dashboardRepository DashboardRepository
		now                 func() time.Time
	}
)

func NewDashboardService(dashboardRepository DashboardRepository) DashboardService {
	return &dashboardService{
		dashboardRepository: dashboardRepository,
		now:                 time.Now,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, session domain.Session) (domain.DashboardResponse, error) {
	if !session.HasCanteen() {
		return domain.DashboardResponse{}, domain.ErrCanteenNotSetUp
	}
	canteenID := session.CanteenID
	current, previous, next := MonthBounds(s.now())

	thisMonth, err := s.dashboardRepository.GetPeriodTotals(ctx, canteenID, current, next)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	lastMonth, err := s.dashboardRepository.GetPeriodTotals(ctx, canteenID, previous, current)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	pending, err := s.dashboardRepository.CountPendingOrders(ctx, canteenID)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	menuItems, err := s.dashboardRepository.CountActiveMenuItems(ctx, canteenID)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	popular, err := s.dashboardRepository.GetPopularItems(ctx, canteenID, current, domain.PopularItemsLimit)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	recent, err := s.dashboardRepository.GetRecentOrders(ctx, canteenID, domain.RecentOrdersLimit)
	if err != nil {
		return domain.DashboardResponse{}, err
	}

	res := domain.DashboardResponse{
		Stats: domain.DashboardStats{
			TotalRevenueMonth:       thisMonth.Revenue,
			TotalOrdersMonth:        thisMonth.Orders,
			PendingOrdersTotal:      pending,
			MenuItemsTotal:          menuItems,
			RevenueGrowthPercentage: GrowthPercentage(thisMonth.Revenue, lastMonth.Revenue),
			OrdersGrowthPercentage:  GrowthPercentage(float64(thisMonth.Orders), float64(lastMonth.Orders)),
			AvgOrderValue:           AverageOrderValue(thisMonth.Revenue, thisMonth.Orders),
		},
		PopularItems: popular,
		RecentOrders: make([]domain.RecentOrder, 0, len(recent)),
	}
	if res.PopularItems == nil {
		res.PopularItems = []domain.PopularItem{}
	}
	for _, order := range recent {
		ro := domain.RecentOrder{
			ID:          order.ID.String(),
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		}
		if order.CustomerName != nil {
			ro.CustomerName = *order.CustomerName
		}
		for _, item := range order.OrderItems {
			ro.ItemCount += item.Quantity
		}
		res.RecentOrders = append(res.RecentOrders, ro)
	}
	return res, nil
}
