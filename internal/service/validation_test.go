package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/models"
)

func TestValidateProduct(t *testing.T) {
	valid := func() *models.Product {
		return &models.Product{
			Name:      "Linen Shirt",
			Price:     decimal.RequireFromString("10.00"),
			Stock:     5,
			ImageURLs: []string{"https://img.example.com/1.jpg"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*models.Product)
		wantErr bool
	}{
		{"valid", func(p *models.Product) {}, false},
		{"zero price is allowed", func(p *models.Product) { p.Price = decimal.Zero }, false},
		{"three images", func(p *models.Product) {
			p.ImageURLs = []string{"a", "b", "c"}
		}, false},
		{"missing name", func(p *models.Product) { p.Name = "" }, true},
		{"negative price", func(p *models.Product) {
			p.Price = decimal.RequireFromString("-0.01")
		}, true},
		{"negative stock", func(p *models.Product) { p.Stock = -1 }, true},
		{"no images", func(p *models.Product) { p.ImageURLs = nil }, true},
		{"too many images", func(p *models.Product) {
			p.ImageURLs = []string{"a", "b", "c", "d"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := validateProduct(p)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateQuantity(t *testing.T) {
	for _, qty := range []int{1, 5, 10} {
		if err := validateQuantity(qty); err != nil {
			t.Errorf("quantity %d: unexpected error %v", qty, err)
		}
	}
	for _, qty := range []int{0, -3, 11, 100} {
		if err := validateQuantity(qty); err == nil {
			t.Errorf("quantity %d: expected error", qty)
		}
	}
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 0, 1, 10},
		{-5, -1, 1, 10},
		{3, 200, 3, 100},
	}
	for _, tt := range tests {
		page, limit := normalizePagination(tt.page, tt.limit)
		if page != tt.wantPage || limit != tt.wantLimit {
			t.Errorf("normalizePagination(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.limit, page, limit, tt.wantPage, tt.wantLimit)
		}
	}
}
