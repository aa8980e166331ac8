package service

import (
	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/models"
)

const (
	minProductImages = 1
	maxProductImages = 3
)

// validateProduct checks the catalog invariants shared by create and
// update.
func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return apperrors.NewValidation("Product name is required")
	}
	if p.Price.LessThan(decimal.Zero) {
		return apperrors.NewValidation("Price cannot be negative")
	}
	if p.Stock < 0 {
		return apperrors.NewValidation("Stock cannot be negative")
	}
	if len(p.ImageURLs) < minProductImages {
		return apperrors.NewValidation("At least one product image is required")
	}
	if len(p.ImageURLs) > maxProductImages {
		return apperrors.NewValidationf("At most %d product images are allowed", maxProductImages)
	}
	return nil
}
