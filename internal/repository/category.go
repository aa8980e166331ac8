package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/models"
)

// PostgresCategoryRepository implements CategoryRepository on PostgreSQL.
type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// List returns categories with their product counts, alphabetically.
func (r *PostgresCategoryRepository) List(ctx context.Context, page, limit int) ([]models.Category, int, error) {
	offset := (page - 1) * limit

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, COALESCE(c.image_url, ''), c.created_at,
		       COUNT(p.id) AS products_count
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id AND p.active = true
		GROUP BY c.id
		ORDER BY c.name
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ImageURL, &c.CreatedAt, &c.ProductsCount); err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *PostgresCategoryRepository) Create(ctx context.Context, name, imageURL string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, image_url)
		VALUES ($1, NULLIF($2, ''))
		RETURNING id, name, COALESCE(image_url, ''), created_at
	`, name, imageURL).Scan(&c.ID, &c.Name, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, apperrors.NewConflict("Category already exists")
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, id int64, name, imageURL string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $1, image_url = NULLIF($2, '')
		WHERE id = $3
		RETURNING id, name, COALESCE(image_url, ''), created_at
	`, name, imageURL, id).Scan(&c.ID, &c.Name, &c.ImageURL, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a category; products keep their rows with category_id set
// to NULL by the foreign key.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}
