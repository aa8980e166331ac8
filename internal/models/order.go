package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a placed order. Core fields are immutable after checkout; only
// Status and UpdatedAt change afterwards.
type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingCity    string          `json:"shipping_city"`
	ShippingPhone   string          `json:"shipping_phone,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CanCancel reports whether a user may still cancel the order.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending
}

// StockEffect is the inventory adjustment a status transition requires for
// an order's line items.
type StockEffect int

const (
	StockKeep    StockEffect = iota // stock untouched
	StockRestock                    // return quantities to stock
	StockConsume                    // guarded decrement of quantities
)

// TransitionStockEffect maps an order status transition to its inventory
// effect. Entering cancelled returns the order's quantities to stock,
// entering confirmed consumes them, and leaving cancelled consumes them
// again since the cancellation already returned them. Every other
// transition, including a write to the same status, leaves stock alone.
func TransitionStockEffect(from, to OrderStatus) StockEffect {
	switch {
	case to == OrderStatusCancelled && from != OrderStatusCancelled:
		return StockRestock
	case to == OrderStatusConfirmed && from != OrderStatusConfirmed && from != OrderStatusCancelled:
		return StockConsume
	case from == OrderStatusCancelled && to != OrderStatusCancelled:
		return StockConsume
	default:
		return StockKeep
	}
}

// OrderItem is a line item with the price snapshotted at order time.
type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
}

// OrderWithItems is an order joined with its line items.
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// OrderSummary is the list-view shape for order listings.
type OrderSummary struct {
	ID          int64           `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	ItemsCount  int             `json:"items_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	// Populated only on admin listings.
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// ShippingInfo is the checkout shipping input.
type ShippingInfo struct {
	Address string
	City    string
	Phone   string
}

// OrderReceipt is the minimal view returned by checkout.
type OrderReceipt struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}
