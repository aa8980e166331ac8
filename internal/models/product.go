package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. Stock is never negative; every mutation path
// goes through a guarded SQL update.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURLs   []string        `json:"image_urls"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Style       string          `json:"style,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Gender      string          `json:"gender,omitempty"`
	Season      string          `json:"season,omitempty"`
	Material    string          `json:"material,omitempty"`
	SalesCount  int             `json:"sales_count"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Page       int
	Limit      int
	CategoryID *int64
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Brand      string
	Gender     string
	InStock    bool
	Sort       string
}

// Category groups products.
type Category struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ImageURL      string    `json:"image_url,omitempty"`
	ProductsCount int       `json:"products_count"`
	CreatedAt     time.Time `json:"created_at"`
}
