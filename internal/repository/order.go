package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
)

// PostgresOrderRepository implements OrderRepository on PostgreSQL.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logging.New("order-repository"),
	}
}

// CreateFromCart is the checkout write path. The order row, its line items,
// the guarded stock decrements and the cart clear all commit or roll back
// as one unit, so a partial order is never observable. A concurrent
// checkout that drains stock between the caller's snapshot and this
// transaction surfaces as an insufficient-stock error and rolls everything
// back.
func (r *PostgresOrderRepository) CreateFromCart(
	ctx context.Context,
	userID int64,
	cart *models.CartWithItems,
	total decimal.Decimal,
	shipping models.ShippingInfo,
) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var order models.Order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total_amount, shipping_address, shipping_city, shipping_phone, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), 'pending')
		RETURNING id, user_id, total_amount, status, shipping_address, shipping_city,
		          COALESCE(shipping_phone, ''), created_at, updated_at
	`, userID, total, shipping.Address, shipping.City, shipping.Phone).Scan(
		&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
		&order.ShippingAddress, &order.ShippingCity, &order.ShippingPhone,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert order", logging.Fields{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	for _, item := range cart.Items {
		// price_at_time is the snapshot price the caller validated and
		// totalled with, not a fresh lookup.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_time)
			VALUES ($1, $2, $3, $4)
		`, order.ID, item.ProductID, item.Quantity, item.ProductPrice)
		if err != nil {
			return nil, err
		}

		if err := decrementStockNamed(ctx, tx, item.ProductID, item.Quantity, item.ProductName); err != nil {
			r.logger.Info("Checkout aborted on stock guard", logging.Fields{
				"order_id":   order.ID,
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			})
			return nil, err
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cart.Cart.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &order, nil
}

func decrementStockNamed(ctx context.Context, tx *sql.Tx, productID int64, qty int, name string) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
		qty, productID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var available int
		if err := tx.QueryRowContext(ctx,
			`SELECT stock FROM products WHERE id = $1`, productID,
		).Scan(&available); err != nil && err != sql.ErrNoRows {
			return err
		}
		return apperrors.NewInsufficientStock(name, available)
	}
	return nil
}

const orderSummaryColumns = `
	o.id, o.total_amount, o.status, o.created_at, o.updated_at,
	COUNT(oi.id) AS items_count`

// GetUserOrders lists a user's orders, newest first, optionally filtered by
// status.
func (r *PostgresOrderRepository) GetUserOrders(ctx context.Context, userID int64, page, limit int, status string) ([]models.OrderSummary, int, error) {
	offset := (page - 1) * limit

	where := "WHERE o.user_id = $3"
	args := []interface{}{limit, offset, userID}
	if status != "" {
		where += " AND o.status = $4"
		args = append(args, status)
	}

	query := `
		SELECT ` + orderSummaryColumns + `
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		` + where + `
		GROUP BY o.id
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.OrderSummary{}
	for rows.Next() {
		var s models.OrderSummary
		if err := rows.Scan(&s.ID, &s.TotalAmount, &s.Status, &s.CreatedAt, &s.UpdatedAt, &s.ItemsCount); err != nil {
			return nil, 0, err
		}
		orders = append(orders, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM orders o WHERE o.user_id = $1`
	countArgs := []interface{}{userID}
	if status != "" {
		countQuery += " AND o.status = $2"
		countArgs = append(countArgs, status)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetUserOrderByID fetches one order with items, enforcing ownership.
func (r *PostgresOrderRepository) GetUserOrderByID(ctx context.Context, orderID, userID int64) (*models.OrderWithItems, error) {
	return r.getOrder(ctx, `WHERE o.id = $1 AND o.user_id = $2`, orderID, userID)
}

// GetByID fetches one order with items without an ownership check (admin).
func (r *PostgresOrderRepository) GetByID(ctx context.Context, orderID int64) (*models.OrderWithItems, error) {
	return r.getOrder(ctx, `WHERE o.id = $1`, orderID)
}

func (r *PostgresOrderRepository) getOrder(ctx context.Context, where string, args ...interface{}) (*models.OrderWithItems, error) {
	var o models.OrderWithItems
	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.user_id, o.total_amount, o.status, o.shipping_address,
		       o.shipping_city, COALESCE(o.shipping_phone, ''), o.created_at, o.updated_at
		FROM orders o `+where,
		args...,
	).Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress,
		&o.ShippingCity, &o.ShippingPhone, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price_at_time
		FROM order_items oi
		LEFT JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.PriceAtTime); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

// Cancel flips a pending order to cancelled and restores stock for every
// line item in the same transaction. The conditional status update doubles
// as the idempotency guard: a second cancel matches zero rows and reports
// false without touching stock.
func (r *PostgresOrderRepository) Cancel(ctx context.Context, orderID, userID int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET status = 'cancelled', updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2 AND status = 'pending'
	`, orderID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if err := r.restockItems(ctx, tx, orderID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	r.logger.Info("Order cancelled", logging.Fields{
		"order_id": orderID,
		"user_id":  userID,
	})
	return true, nil
}

func (r *PostgresOrderRepository) restockItems(ctx context.Context, tx *sql.Tx, orderID int64) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT product_id, quantity FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type line struct {
		productID int64
		quantity  int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			return err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, l := range lines {
		if err := incrementStock(ctx, tx, l.productID, l.quantity); err != nil {
			return err
		}
	}
	return nil
}

// List lists all orders for the admin view with customer details.
func (r *PostgresOrderRepository) List(ctx context.Context, page, limit int, status string) ([]models.OrderSummary, int, error) {
	offset := (page - 1) * limit

	where := ""
	args := []interface{}{limit, offset}
	if status != "" {
		where = "WHERE o.status = $3"
		args = append(args, status)
	}

	query := `
		SELECT ` + orderSummaryColumns + `,
		       COALESCE(u.name, '') AS customer_name,
		       COALESCE(u.email, '') AS customer_email
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		LEFT JOIN order_items oi ON o.id = oi.order_id
		` + where + `
		GROUP BY o.id, u.name, u.email
		ORDER BY o.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.OrderSummary{}
	for rows.Next() {
		var s models.OrderSummary
		if err := rows.Scan(&s.ID, &s.TotalAmount, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.ItemsCount, &s.CustomerName, &s.CustomerEmail); err != nil {
			return nil, 0, err
		}
		orders = append(orders, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM orders o`
	var countArgs []interface{}
	if status != "" {
		countQuery += " WHERE o.status = $1"
		countArgs = append(countArgs, status)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatusWithInventory persists the new status and applies the stock
// counter policy, all in one transaction. The policy compares the status
// before the update with the requested one:
//
//	into cancelled        -> stock returned for every line item
//	into confirmed        -> stock consumed (guarded) for every line item
//	out of cancelled      -> stock re-consumed (guarded)
//	anything else         -> no inventory effect
//
// A guarded decrement that cannot be covered aborts the whole update.
func (r *PostgresOrderRepository) UpdateStatusWithInventory(ctx context.Context, orderID int64, newStatus models.OrderStatus) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var oldStatus models.OrderStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&oldStatus)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		newStatus, orderID,
	)
	if err != nil {
		return false, err
	}

	if err := r.adjustInventory(ctx, tx, orderID, oldStatus, newStatus); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	r.logger.Info("Order status updated", logging.Fields{
		"order_id":   orderID,
		"old_status": oldStatus,
		"new_status": newStatus,
	})
	return true, nil
}

func (r *PostgresOrderRepository) adjustInventory(ctx context.Context, tx *sql.Tx, orderID int64, oldStatus, newStatus models.OrderStatus) error {
	effect := models.TransitionStockEffect(oldStatus, newStatus)
	if effect == models.StockKeep {
		return nil
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT oi.product_id, oi.quantity, COALESCE(p.name, '')
		 FROM order_items oi
		 LEFT JOIN products p ON oi.product_id = p.id
		 WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return err
	}
	defer rows.Close()

	type line struct {
		productID int64
		quantity  int
		name      string
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity, &l.name); err != nil {
			return err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, l := range lines {
		if effect == models.StockRestock {
			if err := incrementStock(ctx, tx, l.productID, l.quantity); err != nil {
				return err
			}
			continue
		}
		if err := decrementStockNamed(ctx, tx, l.productID, l.quantity, l.name); err != nil {
			return err
		}
	}
	return nil
}
