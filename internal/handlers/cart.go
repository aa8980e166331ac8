package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addToCartRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart handles GET /api/cart
func (h *Handlers) GetCart(c *gin.Context) {
	cart, err := h.cartService.GetCart(c.Request.Context(), identity(c).UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

// AddToCart handles POST /api/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	err := h.cartService.AddToCart(c.Request.Context(), identity(c).UserID, req.ProductID, req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Item added to cart")
}

// UpdateCartItem handles PUT /api/cart/items/:id
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid cart item id")
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	err := h.cartService.UpdateCartItem(c.Request.Context(), identity(c).UserID, itemID, req.Quantity)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Cart item updated")
}

// RemoveFromCart handles DELETE /api/cart/items/:id
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid cart item id")
		return
	}

	if err := h.cartService.RemoveFromCart(c.Request.Context(), identity(c).UserID, itemID); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Item removed from cart")
}

// ClearCart handles DELETE /api/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), identity(c).UserID); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Cart cleared")
}

// CartItemsCount handles GET /api/cart/count
func (h *Handlers) CartItemsCount(c *gin.Context) {
	count, err := h.cartService.ItemsCount(c.Request.Context(), identity(c).UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"items_count": count})
}
