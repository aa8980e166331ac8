package service

import (
	"context"
	"fmt"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
	"github.com/souqly/souqly-backend/internal/repository"
)

// ReviewService handles product reviews.
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	logger      *logging.Logger
}

func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		logger:      logging.New("review-service"),
	}
}

// CreateReview adds a review. One review per user per product.
func (s *ReviewService) CreateReview(ctx context.Context, userID, productID int64, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidation("Rating must be between 1 and 5")
	}

	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.NewNotFound(fmt.Sprintf("Product %d not found", productID))
		}
		return nil, err
	}

	reviewed, err := s.reviewRepo.UserHasReviewed(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, apperrors.NewConflict("You have already reviewed this product")
	}

	review, err := s.reviewRepo.Create(ctx, &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Review created", logging.Fields{
		"review_id":  review.ID,
		"product_id": productID,
		"user_id":    userID,
	})
	return review, nil
}

func (s *ReviewService) GetProductReviews(ctx context.Context, productID int64) ([]models.Review, error) {
	return s.reviewRepo.GetByProductID(ctx, productID)
}

func (s *ReviewService) GetSummary(ctx context.Context, productID int64) (*models.ReviewSummary, error) {
	return s.reviewRepo.Summary(ctx, productID)
}

// DeleteReview removes the caller's review. Reviews by other users are
// indistinguishable from missing ones.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID int64) error {
	deleted, err := s.reviewRepo.Delete(ctx, reviewID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound("Review not found")
	}
	return nil
}
