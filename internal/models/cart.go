package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the per-user cart row. Created lazily on first add; the row
// survives checkout, its items do not.
type Cart struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CartItem is one (product, quantity) entry in a cart.
type CartItem struct {
	ID        int64     `json:"id"`
	CartID    int64     `json:"cart_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItemDetail is a cart item enriched with live product fields. The
// checkout orchestrator validates and snapshots against these values.
type CartItemDetail struct {
	CartItem
	ProductName   string          `json:"product_name"`
	ProductPrice  decimal.Decimal `json:"product_price"`
	ProductImages []string        `json:"product_images,omitempty"`
	ProductStock  int             `json:"product_stock"`
	ProductActive bool            `json:"product_active"`
}

// ItemTotal is quantity × live product price.
func (d *CartItemDetail) ItemTotal() decimal.Decimal {
	return d.ProductPrice.Mul(decimal.NewFromInt(int64(d.Quantity)))
}

// CartWithItems is a cart plus its enriched items.
type CartWithItems struct {
	Cart
	Items []CartItemDetail `json:"items"`
}
