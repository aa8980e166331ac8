package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
	"github.com/souqly/souqly-backend/internal/repository"
)

const maxItemQuantity = 10

// CartService handles the per-user shopping cart.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      *logging.Logger
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logging.New("cart-service"),
	}
}

// CartView is the cart response shape.
type CartView struct {
	models.CartWithItems
	ItemsCount int             `json:"items_count"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (s *CartService) GetCart(ctx context.Context, userID int64) (*CartView, error) {
	cart, err := s.cartRepo.GetWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	total, err := s.cartRepo.CalculateTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	count := 0
	for i := range cart.Items {
		count += cart.Items[i].Quantity
	}

	return &CartView{
		CartWithItems: *cart,
		ItemsCount:    count,
		TotalPrice:    total,
	}, nil
}

// AddToCart puts quantity of a product into the user's cart. Adding an item
// already in the cart accumulates its quantity.
func (s *CartService) AddToCart(ctx context.Context, userID, productID int64, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err == apperrors.ErrNotFound {
		return apperrors.NewNotFound("Product not found")
	}
	if err != nil {
		return err
	}
	if !product.Active {
		return apperrors.NewValidationf("Product %q is currently unavailable", product.Name)
	}
	if product.Stock < quantity {
		return apperrors.NewInsufficientStock(product.Name, product.Stock)
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.AddItem(ctx, cart.ID, productID, quantity); err != nil {
		return err
	}

	s.logger.Debug("Item added to cart", logging.Fields{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

// UpdateCartItem sets the quantity of an existing cart item.
func (s *CartService) UpdateCartItem(ctx context.Context, userID, itemID int64, quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}

	owned, err := s.cartRepo.VerifyItemOwnership(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return apperrors.NewAuthorization("Cart item does not belong to you")
	}

	cart, err := s.cartRepo.GetWithItems(ctx, userID)
	if err != nil {
		return err
	}
	for i := range cart.Items {
		item := &cart.Items[i]
		if item.ID != itemID {
			continue
		}
		if item.ProductStock < quantity {
			return apperrors.NewInsufficientStock(item.ProductName, item.ProductStock)
		}
		break
	}

	return s.cartRepo.UpdateItemQuantity(ctx, itemID, quantity)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID int64) error {
	owned, err := s.cartRepo.VerifyItemOwnership(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if !owned {
		return apperrors.NewNotFound("Cart item not found")
	}

	removed, err := s.cartRepo.RemoveItem(ctx, itemID)
	if err != nil {
		return err
	}
	if !removed {
		return apperrors.NewNotFound("Cart item not found")
	}
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.cartRepo.Clear(ctx, cart.ID)
}

func (s *CartService) ItemsCount(ctx context.Context, userID int64) (int, error) {
	return s.cartRepo.ItemsCount(ctx, userID)
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return apperrors.NewValidation("Quantity must be at least 1")
	}
	if quantity > maxItemQuantity {
		return apperrors.NewValidationf("Quantity cannot exceed %d", maxItemQuantity)
	}
	return nil
}
