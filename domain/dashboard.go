package domain

import "time"

var (
	MessageSuccessGetDashboard = "dashboard statistics retrieved successfully"
	MessageFailedGetDashboard  = "failed to retrieve dashboard statistics"
)

const (
	PopularItemsLimit = 5
	RecentOrdersLimit = 5
)

type (
	DashboardStats struct {
		TotalRevenueMonth       float64 `json:"total_revenue_month"`
		TotalOrdersMonth        int64   `json:"total_orders_month"`
		PendingOrdersTotal      int64   `json:"pending_orders_total"`
		MenuItemsTotal          int64   `json:"menu_items_total"`
		RevenueGrowthPercentage float64 `json:"revenue_growth_percentage"`
		OrdersGrowthPercentage  float64 `json:"orders_growth_percentage"`
		AvgOrderValue           float64 `json:"avg_order_value"`
	}

	PopularItem struct {
		Name       string `json:"name"`
		OrderCount int64  `json:"order_count"`
	}

	RecentOrder struct {
		ID           string      `json:"id"`
		CustomerName string      `json:"customer_name,omitempty"`
		Status       OrderStatus `json:"status"`
		TotalAmount  float64     `json:"total_amount"`
		ItemCount    int         `json:"item_count"`
		CreatedAt    time.Time   `json:"created_at"`
	}

	DashboardResponse struct {
		Stats        DashboardStats `json:"stats"`
		PopularItems []PopularItem  `json:"popular_items"`
		RecentOrders []RecentOrder  `json:"recent_orders"`
	}
)
