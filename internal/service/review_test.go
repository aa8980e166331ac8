package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/models"
)

func TestCreateReviewRejectsOutOfRangeRating(t *testing.T) {
	reviews := new(mockReviewRepo)
	products := new(mockProductRepo)
	svc := NewReviewService(reviews, products)

	for _, rating := range []int{0, -1, 6} {
		_, err := svc.CreateReview(context.Background(), 1, 2, rating, "")

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, "Rating must be between 1 and 5", appErr.Message)
	}
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	reviews := new(mockReviewRepo)
	products := new(mockProductRepo)
	products.On("GetByID", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotFound)
	svc := NewReviewService(reviews, products)

	_, err := svc.CreateReview(context.Background(), 1, 42, 4, "Nice")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestCreateReviewTwiceConflicts(t *testing.T) {
	reviews := new(mockReviewRepo)
	products := new(mockProductRepo)
	products.On("GetByID", mock.Anything, int64(2)).Return(&models.Product{ID: 2, Name: "Linen Shirt"}, nil)
	reviews.On("UserHasReviewed", mock.Anything, int64(2), int64(1)).Return(true, nil)
	svc := NewReviewService(reviews, products)

	_, err := svc.CreateReview(context.Background(), 1, 2, 5, "Again")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)
	assert.Equal(t, "You have already reviewed this product", appErr.Message)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReviewPersists(t *testing.T) {
	reviews := new(mockReviewRepo)
	products := new(mockProductRepo)
	products.On("GetByID", mock.Anything, int64(2)).Return(&models.Product{ID: 2, Name: "Linen Shirt"}, nil)
	reviews.On("UserHasReviewed", mock.Anything, int64(2), int64(1)).Return(false, nil)
	reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Review) bool {
		return r.UserID == 1 && r.ProductID == 2 && r.Rating == 4 && r.Comment == "Runs small"
	})).Return(&models.Review{ID: 7, UserID: 1, ProductID: 2, Rating: 4, Comment: "Runs small"}, nil)
	svc := NewReviewService(reviews, products)

	review, err := svc.CreateReview(context.Background(), 1, 2, 4, "Runs small")

	require.NoError(t, err)
	assert.Equal(t, int64(7), review.ID)
	reviews.AssertExpectations(t)
}

func TestDeleteReviewNotOwnedReportsNotFound(t *testing.T) {
	reviews := new(mockReviewRepo)
	reviews.On("Delete", mock.Anything, int64(7), int64(1)).Return(false, nil)
	svc := NewReviewService(reviews, new(mockProductRepo))

	err := svc.DeleteReview(context.Background(), 7, 1)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, "Review not found", appErr.Message)
}

func TestDeleteReviewOwned(t *testing.T) {
	reviews := new(mockReviewRepo)
	reviews.On("Delete", mock.Anything, int64(7), int64(1)).Return(true, nil)
	svc := NewReviewService(reviews, new(mockProductRepo))

	require.NoError(t, svc.DeleteReview(context.Background(), 7, 1))
}
