package models

import "testing"

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}

	invalid := []OrderStatus{"", "refunded", "Pending", "CANCELLED", "done"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestOrderCanCancel(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPending, true},
		{OrderStatusConfirmed, false},
		{OrderStatusShipped, false},
		{OrderStatusDelivered, false},
		{OrderStatusCancelled, false},
	}
	for _, tt := range tests {
		o := Order{Status: tt.status}
		if got := o.CanCancel(); got != tt.want {
			t.Errorf("CanCancel with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestTransitionStockEffect(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     StockEffect
	}{
		// Entering cancelled returns stock.
		{OrderStatusPending, OrderStatusCancelled, StockRestock},
		{OrderStatusConfirmed, OrderStatusCancelled, StockRestock},
		{OrderStatusShipped, OrderStatusCancelled, StockRestock},
		{OrderStatusDelivered, OrderStatusCancelled, StockRestock},

		// Entering confirmed consumes stock.
		{OrderStatusPending, OrderStatusConfirmed, StockConsume},
		{OrderStatusShipped, OrderStatusConfirmed, StockConsume},
		{OrderStatusDelivered, OrderStatusConfirmed, StockConsume},

		// Leaving cancelled consumes what the cancellation returned.
		// Cancelled to confirmed must consume exactly once.
		{OrderStatusCancelled, OrderStatusConfirmed, StockConsume},
		{OrderStatusCancelled, OrderStatusPending, StockConsume},
		{OrderStatusCancelled, OrderStatusShipped, StockConsume},
		{OrderStatusCancelled, OrderStatusDelivered, StockConsume},

		// Writing the same status back is a no-op.
		{OrderStatusPending, OrderStatusPending, StockKeep},
		{OrderStatusConfirmed, OrderStatusConfirmed, StockKeep},
		{OrderStatusCancelled, OrderStatusCancelled, StockKeep},
		{OrderStatusShipped, OrderStatusShipped, StockKeep},
		{OrderStatusDelivered, OrderStatusDelivered, StockKeep},

		// Transitions between non-cancelled, non-confirmed states.
		{OrderStatusConfirmed, OrderStatusShipped, StockKeep},
		{OrderStatusShipped, OrderStatusDelivered, StockKeep},
		{OrderStatusConfirmed, OrderStatusDelivered, StockKeep},
		{OrderStatusPending, OrderStatusShipped, StockKeep},
		{OrderStatusPending, OrderStatusDelivered, StockKeep},
		{OrderStatusConfirmed, OrderStatusPending, StockKeep},
		{OrderStatusShipped, OrderStatusPending, StockKeep},
		{OrderStatusDelivered, OrderStatusPending, StockKeep},
		{OrderStatusDelivered, OrderStatusShipped, StockKeep},
	}
	for _, tt := range tests {
		if got := TransitionStockEffect(tt.from, tt.to); got != tt.want {
			t.Errorf("TransitionStockEffect(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
