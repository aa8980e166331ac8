package repository

import (
	"context"
	"database/sql"

	"github.com/souqly/souqly-backend/internal/models"
)

// PostgresReviewRepository implements ReviewRepository on PostgreSQL.
type PostgresReviewRepository struct {
	db *sql.DB
}

func NewPostgresReviewRepository(db *sql.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (user_id, product_id, rating, comment)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, created_at
	`, review.UserID, review.ProductID, review.Rating, review.Comment).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return nil, err
	}
	return review, nil
}

// GetByProductID returns reviews newest first, with reviewer names.
func (r *PostgresReviewRepository) GetByProductID(ctx context.Context, productID int64) ([]models.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT r.id, r.user_id, r.product_id, r.rating, COALESCE(r.comment, ''),
		       COALESCE(u.name, ''), r.created_at
		FROM reviews r
		LEFT JOIN users u ON r.user_id = u.id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.ProductID, &rev.Rating,
			&rev.Comment, &rev.UserName, &rev.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *PostgresReviewRepository) UserHasReviewed(ctx context.Context, productID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reviews WHERE product_id = $1 AND user_id = $2)`,
		productID, userID,
	).Scan(&exists)
	return exists, err
}

// Delete removes a review only when userID wrote it.
func (r *PostgresReviewRepository) Delete(ctx context.Context, reviewID, userID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = $1 AND user_id = $2`, reviewID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Summary aggregates the star distribution and average in one query.
func (r *PostgresReviewRepository) Summary(ctx context.Context, productID int64) (*models.ReviewSummary, error) {
	summary := &models.ReviewSummary{
		ProductID:  productID,
		StarCounts: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT rating, COUNT(*)
		FROM reviews
		WHERE product_id = $1
		GROUP BY rating
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weighted int
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		summary.StarCounts[rating] = count
		summary.TotalReviews += count
		weighted += rating * count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if summary.TotalReviews > 0 {
		summary.AverageRating = float64(weighted) / float64(summary.TotalReviews)
	}
	return summary, nil
}
