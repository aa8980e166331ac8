package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
)

const productColumns = `id, name, description, price, stock, image_urls, category_id,
	color, size, style, brand, gender, season, material, sales_count, active,
	created_at, updated_at`

// PostgresProductRepository implements ProductRepository on PostgreSQL.
type PostgresProductRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{
		db:     db,
		logger: logging.New("product-repository"),
	}
}

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	var p models.Product
	var description, color, size, style, brand, gender, season, material sql.NullString
	var categoryID sql.NullInt64
	var images pq.StringArray

	err := row.Scan(
		&p.ID, &p.Name, &description, &p.Price, &p.Stock, &images, &categoryID,
		&color, &size, &style, &brand, &gender, &season, &material,
		&p.SalesCount, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	p.Color = color.String
	p.Size = size.String
	p.Style = style.String
	p.Brand = brand.String
	p.Gender = gender.String
	p.Season = season.String
	p.Material = material.String
	p.ImageURLs = []string(images)
	if categoryID.Valid {
		p.CategoryID = &categoryID.Int64
	}
	return &p, nil
}

// GetByID retrieves a product by its identifier.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch product", logging.Fields{
			"product_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}
	return p, nil
}

// List retrieves products matching the filter, newest first unless the
// filter asks otherwise.
func (r *PostgresProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	conds = append(conds, "active = true")
	if filter.CategoryID != nil {
		add("category_id = $%d", *filter.CategoryID)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}
	if filter.Brand != "" {
		add("brand = $%d", filter.Brand)
	}
	if filter.Gender != "" {
		add("gender = $%d", filter.Gender)
	}
	if filter.InStock {
		conds = append(conds, "stock > 0")
	}

	where := "WHERE " + strings.Join(conds, " AND ")

	orderBy := "created_at DESC"
	switch filter.Sort {
	case "price_asc":
		orderBy = "price ASC"
	case "price_desc":
		orderBy = "price DESC"
	case "best_selling":
		orderBy = "sales_count DESC"
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := "SELECT " + productColumns + " FROM products " + where +
		" ORDER BY " + orderBy +
		" LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

// Create inserts a new product.
func (r *PostgresProductRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (name, description, price, stock, image_urls, category_id,
			color, size, style, brand, gender, season, material, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, true)
		RETURNING ` + productColumns

	created, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, pq.Array(p.ImageURLs), p.CategoryID,
		p.Color, p.Size, p.Style, p.Brand, p.Gender, p.Season, p.Material,
	))
	if err != nil {
		r.logger.Error("Failed to create product", logging.Fields{
			"name":  p.Name,
			"error": err.Error(),
		})
		return nil, err
	}
	return created, nil
}

// Update rewrites the mutable product fields.
func (r *PostgresProductRepository) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, image_urls = $5,
			category_id = $6, color = $7, size = $8, style = $9, brand = $10,
			gender = $11, season = $12, material = $13, active = $14,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $15
		RETURNING ` + productColumns

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Name, p.Description, p.Price, p.Stock, pq.Array(p.ImageURLs), p.CategoryID,
		p.Color, p.Size, p.Style, p.Brand, p.Gender, p.Season, p.Material,
		p.Active, p.ID,
	))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a product row.
func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// ExistsByName reports whether a product with the given name exists.
func (r *PostgresProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)`, name,
	).Scan(&exists)
	return exists, err
}

// SetStock overwrites a product's stock level.
func (r *PostgresProductRepository) SetStock(ctx context.Context, productID int64, stock int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, stock, productID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// IncrementSalesCount adds quantity to a product's sales counter.
func (r *PostgresProductRepository) IncrementSalesCount(ctx context.Context, productID int64, qty int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET sales_count = sales_count + $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, qty, productID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// execer covers *sql.DB and *sql.Tx so the ledger updates run both
// standalone and inside the checkout/status-update transactions.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func incrementStock(ctx context.Context, ex execer, productID int64, qty int) error {
	_, err := ex.ExecContext(ctx,
		`UPDATE products SET stock = stock + $1 WHERE id = $2`,
		qty, productID,
	)
	return err
}
