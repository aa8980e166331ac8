package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// CreateReview handles POST /api/products/:id/reviews
func (h *Handlers) CreateReview(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid product id")
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), identity(c).UserID, productID, req.Rating, req.Comment)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusCreated, review)
}

// ListProductReviews handles GET /api/products/:id/reviews
func (h *Handlers) ListProductReviews(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid product id")
		return
	}

	reviews, err := h.reviewService.GetProductReviews(c.Request.Context(), productID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"reviews": reviews})
}

// ReviewSummary handles GET /api/products/:id/reviews/summary
func (h *Handlers) ReviewSummary(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid product id")
		return
	}

	summary, err := h.reviewService.GetSummary(c.Request.Context(), productID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, summary)
}

// DeleteReview handles DELETE /api/reviews/:id
func (h *Handlers) DeleteReview(c *gin.Context) {
	reviewID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid review id")
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, identity(c).UserID); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Review deleted")
}
