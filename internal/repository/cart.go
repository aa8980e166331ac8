package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
)

// PostgresCartRepository implements CartRepository on PostgreSQL.
type PostgresCartRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresCartRepository(db *sql.DB) *PostgresCartRepository {
	return &PostgresCartRepository{
		db:     db,
		logger: logging.New("cart-repository"),
	}
}

// GetOrCreate returns the user's cart, creating it on first use.
func (r *PostgresCartRepository) GetOrCreate(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at FROM carts WHERE user_id = $1`, userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err == nil {
		return &cart, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO carts (user_id) VALUES ($1) RETURNING id, user_id, created_at`, userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create cart", logging.Fields{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}
	return &cart, nil
}

// GetWithItems returns the user's cart with every item enriched with live
// product name, price, stock and active flag.
func (r *PostgresCartRepository) GetWithItems(ctx context.Context, userID int64) (*models.CartWithItems, error) {
	cart, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at,
		       p.name, p.price, p.image_urls, p.stock, p.active
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &models.CartWithItems{Cart: *cart, Items: []models.CartItemDetail{}}
	for rows.Next() {
		var d models.CartItemDetail
		var images pq.StringArray
		if err := rows.Scan(
			&d.ID, &d.CartID, &d.ProductID, &d.Quantity, &d.CreatedAt, &d.UpdatedAt,
			&d.ProductName, &d.ProductPrice, &images, &d.ProductStock, &d.ProductActive,
		); err != nil {
			return nil, err
		}
		d.ProductImages = []string(images)
		result.Items = append(result.Items, d)
	}
	return result, rows.Err()
}

// AddItem adds quantity of a product to the cart, merging with an existing
// line for the same product.
func (r *PostgresCartRepository) AddItem(ctx context.Context, cartID, productID int64, quantity int) error {
	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, cartID, productID, quantity)
	return err
}

// UpdateItemQuantity sets an item's quantity.
func (r *PostgresCartRepository) UpdateItemQuantity(ctx context.Context, itemID int64, quantity int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		quantity, itemID,
	)
	return err
}

// RemoveItem deletes one cart item.
func (r *PostgresCartRepository) RemoveItem(ctx context.Context, itemID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Clear removes every item from a cart. The cart row itself stays.
func (r *PostgresCartRepository) Clear(ctx context.Context, cartID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

// ItemsCount counts the items in the user's cart.
func (r *PostgresCartRepository) ItemsCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(ci.id)
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		WHERE c.user_id = $1
	`, userID).Scan(&count)
	return count, err
}

// CalculateTotal sums quantity × live price over the user's cart, counting
// only active products.
func (r *PostgresCartRepository) CalculateTotal(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `
		SELECT SUM(ci.quantity * p.price)
		FROM cart_items ci
		JOIN carts c ON ci.cart_id = c.id
		JOIN products p ON ci.product_id = p.id
		WHERE c.user_id = $1 AND p.active = true
	`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// VerifyItemOwnership reports whether the cart item belongs to the user.
func (r *PostgresCartRepository) VerifyItemOwnership(ctx context.Context, itemID, userID int64) (bool, error) {
	var owned bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM cart_items ci
			JOIN carts c ON ci.cart_id = c.id
			WHERE ci.id = $1 AND c.user_id = $2
		)
	`, itemID, userID).Scan(&owned)
	return owned, err
}
