package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/models"
)

// Compile-time checks that the Postgres implementations satisfy the
// repository interfaces.
var (
	_ ProductRepository  = (*PostgresProductRepository)(nil)
	_ CartRepository     = (*PostgresCartRepository)(nil)
	_ OrderRepository    = (*PostgresOrderRepository)(nil)
	_ UserRepository     = (*PostgresUserRepository)(nil)
	_ CategoryRepository = (*PostgresCategoryRepository)(nil)
	_ ReviewRepository   = (*PostgresReviewRepository)(nil)
	_ StatsRepository    = (*PostgresStatsRepository)(nil)
)

// ProductRepository owns catalog rows and the inventory ledger.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)

	// SetStock overwrites a product's stock level.
	SetStock(ctx context.Context, productID int64, stock int) (bool, error)

	// IncrementSalesCount bumps the best-seller counter.
	IncrementSalesCount(ctx context.Context, productID int64, qty int) (bool, error)
}

// CartRepository owns the per-user cart and its items.
type CartRepository interface {
	GetOrCreate(ctx context.Context, userID int64) (*models.Cart, error)
	GetWithItems(ctx context.Context, userID int64) (*models.CartWithItems, error)
	AddItem(ctx context.Context, cartID, productID int64, quantity int) error
	UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, itemID int64) (bool, error)
	Clear(ctx context.Context, cartID int64) error
	ItemsCount(ctx context.Context, userID int64) (int, error)
	CalculateTotal(ctx context.Context, userID int64) (decimal.Decimal, error)
	VerifyItemOwnership(ctx context.Context, itemID, userID int64) (bool, error)
}

// OrderRepository owns the order ledger, including the transactional
// checkout write and the status transitions with inventory side effects.
type OrderRepository interface {
	// CreateFromCart performs the atomic checkout write: order row, line
	// items at snapshot prices, guarded stock decrements and the cart clear
	// in a single transaction. Any failure rolls the whole thing back.
	CreateFromCart(ctx context.Context, userID int64, cart *models.CartWithItems, total decimal.Decimal, shipping models.ShippingInfo) (*models.Order, error)

	GetUserOrders(ctx context.Context, userID int64, page, limit int, status string) ([]models.OrderSummary, int, error)
	GetUserOrderByID(ctx context.Context, orderID, userID int64) (*models.OrderWithItems, error)

	// Cancel flips a pending order owned by userID to cancelled and restores
	// stock for every line item, atomically. Returns false when the order is
	// not cancellable (wrong owner, not pending, or already cancelled).
	Cancel(ctx context.Context, orderID, userID int64) (bool, error)

	List(ctx context.Context, page, limit int, status string) ([]models.OrderSummary, int, error)
	GetByID(ctx context.Context, orderID int64) (*models.OrderWithItems, error)

	// UpdateStatusWithInventory persists newStatus and applies the stock
	// counter policy derived from the old/new status pair in one
	// transaction. Returns false when the order does not exist.
	UpdateStatusWithInventory(ctx context.Context, orderID int64, newStatus models.OrderStatus) (bool, error)
}

// UserRepository owns account rows.
type UserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetStatus returns the active flag, or ErrNotFound.
	GetStatus(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, page, limit int) ([]models.SafeUser, int, error)
	Search(ctx context.Context, term string, page, limit int) ([]models.SafeUser, int, error)
	UpdateStatus(ctx context.Context, id int64, active bool) (bool, error)
	UpdateRole(ctx context.Context, id int64, role string) (bool, error)
}

// CategoryRepository owns product categories.
type CategoryRepository interface {
	List(ctx context.Context, page, limit int) ([]models.Category, int, error)
	Create(ctx context.Context, name, imageURL string) (*models.Category, error)
	Update(ctx context.Context, id int64, name, imageURL string) (*models.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ReviewRepository owns product reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *models.Review) (*models.Review, error)
	GetByProductID(ctx context.Context, productID int64) ([]models.Review, error)
	UserHasReviewed(ctx context.Context, productID, userID int64) (bool, error)
	Delete(ctx context.Context, reviewID, userID int64) (bool, error)
	Summary(ctx context.Context, productID int64) (*models.ReviewSummary, error)
}

// StatsRepository serves the admin dashboard aggregates.
type StatsRepository interface {
	UserStats(ctx context.Context) (*models.UserStats, error)
	ProductStats(ctx context.Context) (*models.ProductStats, error)
	OrderStats(ctx context.Context) (*models.OrderStats, error)
	RevenueStats(ctx context.Context) (*models.RevenueStats, error)
	RecentOrders(ctx context.Context, limit int) ([]models.OrderSummary, error)
}
