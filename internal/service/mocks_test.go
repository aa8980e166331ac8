package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/souqly/souqly-backend/internal/models"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateFromCart(ctx context.Context, userID int64, cart *models.CartWithItems, total decimal.Decimal, shipping models.ShippingInfo) (*models.Order, error) {
	args := m.Called(ctx, userID, cart, total, shipping)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) GetUserOrders(ctx context.Context, userID int64, page, limit int, status string) ([]models.OrderSummary, int, error) {
	args := m.Called(ctx, userID, page, limit, status)
	return args.Get(0).([]models.OrderSummary), args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) GetUserOrderByID(ctx context.Context, orderID, userID int64) (*models.OrderWithItems, error) {
	args := m.Called(ctx, orderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderWithItems), args.Error(1)
}

func (m *mockOrderRepo) Cancel(ctx context.Context, orderID, userID int64) (bool, error) {
	args := m.Called(ctx, orderID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context, page, limit int, status string) ([]models.OrderSummary, int, error) {
	args := m.Called(ctx, page, limit, status)
	return args.Get(0).([]models.OrderSummary), args.Int(1), args.Error(2)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, orderID int64) (*models.OrderWithItems, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderWithItems), args.Error(1)
}

func (m *mockOrderRepo) UpdateStatusWithInventory(ctx context.Context, orderID int64, newStatus models.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, newStatus)
	return args.Bool(0), args.Error(1)
}

type mockCartRepo struct {
	mock.Mock
}

func (m *mockCartRepo) GetOrCreate(ctx context.Context, userID int64) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *mockCartRepo) GetWithItems(ctx context.Context, userID int64) (*models.CartWithItems, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartWithItems), args.Error(1)
}

func (m *mockCartRepo) AddItem(ctx context.Context, cartID, productID int64, quantity int) error {
	return m.Called(ctx, cartID, productID, quantity).Error(0)
}

func (m *mockCartRepo) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}

func (m *mockCartRepo) RemoveItem(ctx context.Context, itemID int64) (bool, error) {
	args := m.Called(ctx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCartRepo) Clear(ctx context.Context, cartID int64) error {
	return m.Called(ctx, cartID).Error(0)
}

func (m *mockCartRepo) ItemsCount(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockCartRepo) CalculateTotal(ctx context.Context, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockCartRepo) VerifyItemOwnership(ctx context.Context, itemID, userID int64) (bool, error) {
	args := m.Called(ctx, itemID, userID)
	return args.Bool(0), args.Error(1)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) SetStock(ctx context.Context, productID int64, stock int) (bool, error) {
	args := m.Called(ctx, productID, stock)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) IncrementSalesCount(ctx context.Context, productID int64, qty int) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	args := m.Called(ctx, name, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetStatus(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, page, limit int) ([]models.SafeUser, int, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]models.SafeUser), args.Int(1), args.Error(2)
}

func (m *mockUserRepo) Search(ctx context.Context, term string, page, limit int) ([]models.SafeUser, int, error) {
	args := m.Called(ctx, term, page, limit)
	return args.Get(0).([]models.SafeUser), args.Int(1), args.Error(2)
}

func (m *mockUserRepo) UpdateStatus(ctx context.Context, id int64, active bool) (bool, error) {
	args := m.Called(ctx, id, active)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id int64, role string) (bool, error) {
	args := m.Called(ctx, id, role)
	return args.Bool(0), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockEventPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error {
	return m.Called(ctx, order, previousStatus).Error(0)
}

func (m *mockEventPublisher) PublishOrderCancelled(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type mockProductCache struct {
	mock.Mock
}

func (m *mockProductCache) Get(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *mockProductCache) Set(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductCache) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, r *models.Review) (*models.Review, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepo) GetByProductID(ctx context.Context, productID int64) ([]models.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *mockReviewRepo) UserHasReviewed(ctx context.Context, productID, userID int64) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) Delete(ctx context.Context, reviewID, userID int64) (bool, error) {
	args := m.Called(ctx, reviewID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReviewRepo) Summary(ctx context.Context, productID int64) (*models.ReviewSummary, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewSummary), args.Error(1)
}
