package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqly/souqly-backend/internal/middleware"
	"github.com/souqly/souqly-backend/internal/models"
)

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	ShippingCity    string `json:"shipping_city" binding:"required"`
	ShippingPhone   string `json:"shipping_phone"`
}

// Checkout handles POST /api/orders/checkout
func (h *Handlers) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	receipt, err := h.orderService.Checkout(c.Request.Context(), identity(c).UserID, models.ShippingInfo{
		Address: req.ShippingAddress,
		City:    req.ShippingCity,
		Phone:   req.ShippingPhone,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	middleware.CountOrderPlaced()
	respondData(c, http.StatusCreated, receipt)
}

// ListOrders handles GET /api/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	status := c.Query("status")

	orders, total, err := h.orderService.GetUserOrders(c.Request.Context(), identity(c).UserID, page, limit, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": newPagination(page, limit, total),
	})
}

// GetOrder handles GET /api/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid order id")
		return
	}

	order, err := h.orderService.GetUserOrderByID(c.Request.Context(), orderID, identity(c).UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// CancelOrder handles PUT /api/orders/:id/cancel
func (h *Handlers) CancelOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid order id")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), orderID, identity(c).UserID); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Order cancelled")
}
