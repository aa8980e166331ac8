package models

import "github.com/shopspring/decimal"

// Admin dashboard aggregates, one struct per query in the stats repository.

type UserStats struct {
	TotalUsers   int `json:"total_users"`
	ActiveUsers  int `json:"active_users"`
	AdminUsers   int `json:"admin_users"`
	NewUsersWeek int `json:"new_users_week"`
}

type ProductStats struct {
	TotalProducts    int `json:"total_products"`
	InStock          int `json:"in_stock"`
	OutOfStock       int `json:"out_of_stock"`
	InactiveProducts int `json:"inactive_products"`
	TotalSales       int `json:"total_sales"`
}

type OrderStats struct {
	TotalOrders     int `json:"total_orders"`
	PendingOrders   int `json:"pending_orders"`
	ConfirmedOrders int `json:"confirmed_orders"`
	ShippedOrders   int `json:"shipped_orders"`
	DeliveredOrders int `json:"delivered_orders"`
	NewOrdersWeek   int `json:"new_orders_week"`
}

type RevenueStats struct {
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	DeliveredRevenue decimal.Decimal `json:"delivered_revenue"`
	Revenue30Days    decimal.Decimal `json:"revenue_30_days"`
}

type DashboardStats struct {
	Users        UserStats      `json:"users"`
	Products     ProductStats   `json:"products"`
	Orders       OrderStats     `json:"orders"`
	Revenue      RevenueStats   `json:"revenue"`
	RecentOrders []OrderSummary `json:"recent_orders"`
}
