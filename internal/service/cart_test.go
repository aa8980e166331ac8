package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/models"
)

func activeProduct() *models.Product {
	return &models.Product{
		ID:     100,
		Name:   "Linen Shirt",
		Price:  decimal.RequireFromString("10.00"),
		Stock:  5,
		Active: true,
	}
}

func TestAddToCart(t *testing.T) {
	cartRepo := new(mockCartRepo)
	productRepo := new(mockProductRepo)

	productRepo.On("GetByID", mock.Anything, int64(100)).Return(activeProduct(), nil)
	cartRepo.On("GetOrCreate", mock.Anything, int64(1)).Return(&models.Cart{ID: 7, UserID: 1}, nil)
	cartRepo.On("AddItem", mock.Anything, int64(7), int64(100), 2).Return(nil)

	svc := NewCartService(cartRepo, productRepo)
	err := svc.AddToCart(context.Background(), 1, 100, 2)

	require.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestAddToCartQuantityBounds(t *testing.T) {
	svc := NewCartService(new(mockCartRepo), new(mockProductRepo))

	for _, qty := range []int{0, -1, 11} {
		err := svc.AddToCart(context.Background(), 1, 100, qty)
		require.Error(t, err, "quantity %d", qty)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	cartRepo := new(mockCartRepo)
	productRepo := new(mockProductRepo)
	productRepo.On("GetByID", mock.Anything, int64(999)).Return(nil, apperrors.ErrNotFound)

	svc := NewCartService(cartRepo, productRepo)
	err := svc.AddToCart(context.Background(), 1, 999, 1)

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 404, appErr.StatusCode)
	cartRepo.AssertNotCalled(t, "AddItem")
}

func TestAddToCartInactiveProduct(t *testing.T) {
	productRepo := new(mockProductRepo)
	p := activeProduct()
	p.Active = false
	productRepo.On("GetByID", mock.Anything, int64(100)).Return(p, nil)

	svc := NewCartService(new(mockCartRepo), productRepo)
	err := svc.AddToCart(context.Background(), 1, 100, 1)

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Contains(t, appErr.Message, "unavailable")
}

func TestAddToCartInsufficientStock(t *testing.T) {
	productRepo := new(mockProductRepo)
	p := activeProduct()
	p.Stock = 1
	productRepo.On("GetByID", mock.Anything, int64(100)).Return(p, nil)

	svc := NewCartService(new(mockCartRepo), productRepo)
	err := svc.AddToCart(context.Background(), 1, 100, 3)

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "INSUFFICIENT_STOCK", appErr.Code)
}

func TestUpdateCartItemOwnership(t *testing.T) {
	cartRepo := new(mockCartRepo)
	cartRepo.On("VerifyItemOwnership", mock.Anything, int64(11), int64(2)).Return(false, nil)

	svc := NewCartService(cartRepo, new(mockProductRepo))
	err := svc.UpdateCartItem(context.Background(), 2, 11, 3)

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 403, appErr.StatusCode)
	cartRepo.AssertNotCalled(t, "UpdateItemQuantity")
}

func TestUpdateCartItemStockCheck(t *testing.T) {
	cartRepo := new(mockCartRepo)
	cartRepo.On("VerifyItemOwnership", mock.Anything, int64(11), int64(1)).Return(true, nil)
	cartRepo.On("GetWithItems", mock.Anything, int64(1)).Return(cartFixture(), nil)

	svc := NewCartService(cartRepo, new(mockProductRepo))
	err := svc.UpdateCartItem(context.Background(), 1, 11, 6) // stock is 5

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "INSUFFICIENT_STOCK", appErr.Code)
	cartRepo.AssertNotCalled(t, "UpdateItemQuantity")
}

func TestUpdateCartItem(t *testing.T) {
	cartRepo := new(mockCartRepo)
	cartRepo.On("VerifyItemOwnership", mock.Anything, int64(11), int64(1)).Return(true, nil)
	cartRepo.On("GetWithItems", mock.Anything, int64(1)).Return(cartFixture(), nil)
	cartRepo.On("UpdateItemQuantity", mock.Anything, int64(11), 3).Return(nil)

	svc := NewCartService(cartRepo, new(mockProductRepo))
	err := svc.UpdateCartItem(context.Background(), 1, 11, 3)

	require.NoError(t, err)
	cartRepo.AssertExpectations(t)
}

func TestRemoveFromCartNotOwned(t *testing.T) {
	cartRepo := new(mockCartRepo)
	cartRepo.On("VerifyItemOwnership", mock.Anything, int64(11), int64(2)).Return(false, nil)

	svc := NewCartService(cartRepo, new(mockProductRepo))
	err := svc.RemoveFromCart(context.Background(), 2, 11)

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestGetCart(t *testing.T) {
	cartRepo := new(mockCartRepo)
	cartRepo.On("GetWithItems", mock.Anything, int64(1)).Return(cartFixture(), nil)
	cartRepo.On("CalculateTotal", mock.Anything, int64(1)).
		Return(decimal.RequireFromString("25.00"), nil)

	svc := NewCartService(cartRepo, new(mockProductRepo))
	view, err := svc.GetCart(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 3, view.ItemsCount)
	assert.True(t, view.TotalPrice.Equal(decimal.RequireFromString("25.00")))
}
