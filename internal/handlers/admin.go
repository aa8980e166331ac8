package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqly/souqly-backend/internal/models"
)

type updateUserStatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type updateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type categoryRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url"`
}

// AdminListUsers handles GET /api/admin/users
func (h *Handlers) AdminListUsers(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	users, total, err := h.adminService.ListUsers(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": newPagination(page, limit, total),
	})
}

// AdminGetUser handles GET /api/admin/users/:id
func (h *Handlers) AdminGetUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid user id")
		return
	}

	user, err := h.adminService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}

// AdminUpdateUserStatus handles PUT /api/admin/users/:id/status
func (h *Handlers) AdminUpdateUserStatus(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid user id")
		return
	}

	var req updateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	if err := h.adminService.UpdateUserStatus(c.Request.Context(), identity(c), userID, *req.Active); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User status updated")
}

// AdminUpdateUserRole handles PUT /api/admin/users/:id/role
func (h *Handlers) AdminUpdateUserRole(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid user id")
		return
	}

	var req updateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	if err := h.adminService.UpdateUserRole(c.Request.Context(), identity(c), userID, req.Role); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User role updated")
}

// AdminListOrders handles GET /api/admin/orders
func (h *Handlers) AdminListOrders(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	orders, total, err := h.adminService.ListOrders(c.Request.Context(), page, limit, c.Query("status"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": newPagination(page, limit, total),
	})
}

// AdminGetOrder handles GET /api/admin/orders/:id
func (h *Handlers) AdminGetOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid order id")
		return
	}

	order, err := h.adminService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// AdminUpdateOrderStatus handles PUT /api/admin/orders/:id/status
func (h *Handlers) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid order id")
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	order, err := h.adminService.UpdateOrderStatus(c.Request.Context(), orderID, models.OrderStatus(req.Status))
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, order)
}

// AdminDashboardStats handles GET /api/admin/dashboard/stats
func (h *Handlers) AdminDashboardStats(c *gin.Context) {
	stats, err := h.adminService.DashboardStats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// AdminCreateCategory handles POST /api/admin/categories
func (h *Handlers) AdminCreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	category, err := h.adminService.CreateCategory(c.Request.Context(), req.Name, req.ImageURL)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusCreated, category)
}

// AdminUpdateCategory handles PUT /api/admin/categories/:id
func (h *Handlers) AdminUpdateCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid category id")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	category, err := h.adminService.UpdateCategory(c.Request.Context(), categoryID, req.Name, req.ImageURL)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, category)
}

// AdminDeleteCategory handles DELETE /api/admin/categories/:id
func (h *Handlers) AdminDeleteCategory(c *gin.Context) {
	categoryID, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid category id")
		return
	}

	if err := h.adminService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Category deleted")
}
