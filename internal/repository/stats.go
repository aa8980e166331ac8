package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/models"
)

// PostgresStatsRepository serves the admin dashboard aggregates.
type PostgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) *PostgresStatsRepository {
	return &PostgresStatsRepository{db: db}
}

func (r *PostgresStatsRepository) UserStats(ctx context.Context) (*models.UserStats, error) {
	var s models.UserStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE active = true),
		       COUNT(*) FILTER (WHERE role = 'admin'),
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		FROM users
	`).Scan(&s.TotalUsers, &s.ActiveUsers, &s.AdminUsers, &s.NewUsersWeek)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresStatsRepository) ProductStats(ctx context.Context) (*models.ProductStats, error) {
	var s models.ProductStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE stock > 0 AND active = true),
		       COUNT(*) FILTER (WHERE stock = 0 AND active = true),
		       COUNT(*) FILTER (WHERE active = false),
		       COALESCE(SUM(sales_count), 0)
		FROM products
	`).Scan(&s.TotalProducts, &s.InStock, &s.OutOfStock, &s.InactiveProducts, &s.TotalSales)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresStatsRepository) OrderStats(ctx context.Context) (*models.OrderStats, error) {
	var s models.OrderStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'confirmed'),
		       COUNT(*) FILTER (WHERE status = 'shipped'),
		       COUNT(*) FILTER (WHERE status = 'delivered'),
		       COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		FROM orders
	`).Scan(&s.TotalOrders, &s.PendingOrders, &s.ConfirmedOrders,
		&s.ShippedOrders, &s.DeliveredOrders, &s.NewOrdersWeek)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RevenueStats excludes cancelled orders from every figure.
func (r *PostgresStatsRepository) RevenueStats(ctx context.Context) (*models.RevenueStats, error) {
	var s models.RevenueStats
	var total, delivered, last30 decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `
		SELECT SUM(total_amount) FILTER (WHERE status != 'cancelled'),
		       SUM(total_amount) FILTER (WHERE status = 'delivered'),
		       SUM(total_amount) FILTER (WHERE status != 'cancelled'
		           AND created_at >= NOW() - INTERVAL '30 days')
		FROM orders
	`).Scan(&total, &delivered, &last30)
	if err != nil {
		return nil, err
	}
	s.TotalRevenue = total.Decimal
	s.DeliveredRevenue = delivered.Decimal
	s.Revenue30Days = last30.Decimal
	return &s, nil
}

func (r *PostgresStatsRepository) RecentOrders(ctx context.Context, limit int) ([]models.OrderSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.total_amount, o.status, o.created_at, o.updated_at,
		       COUNT(oi.id), COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		LEFT JOIN order_items oi ON o.id = oi.order_id
		GROUP BY o.id, u.name, u.email
		ORDER BY o.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.OrderSummary{}
	for rows.Next() {
		var s models.OrderSummary
		if err := rows.Scan(&s.ID, &s.TotalAmount, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.ItemsCount, &s.CustomerName, &s.CustomerEmail); err != nil {
			return nil, err
		}
		orders = append(orders, s)
	}
	return orders, rows.Err()
}
