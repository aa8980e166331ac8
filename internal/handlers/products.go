package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/models"
)

type productRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock"`
	ImageURLs   []string        `json:"image_urls" binding:"required"`
	CategoryID  *int64          `json:"category_id"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	Style       string          `json:"style"`
	Brand       string          `json:"brand"`
	Gender      string          `json:"gender"`
	Season      string          `json:"season"`
	Material    string          `json:"material"`
	Active      *bool           `json:"active"`
}

func (r *productRequest) toModel() *models.Product {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &models.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		ImageURLs:   r.ImageURLs,
		CategoryID:  r.CategoryID,
		Color:       r.Color,
		Size:        r.Size,
		Style:       r.Style,
		Brand:       r.Brand,
		Gender:      r.Gender,
		Season:      r.Season,
		Material:    r.Material,
		Active:      active,
	}
}

// ListProducts handles GET /api/products
func (h *Handlers) ListProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Page:    queryInt(c, "page", 1),
		Limit:   queryInt(c, "limit", 10),
		Search:  c.Query("search"),
		Brand:   c.Query("brand"),
		Gender:  c.Query("gender"),
		InStock: c.Query("in_stock") == "true",
		Sort:    c.Query("sort"),
	}
	if v := c.Query("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CategoryID = &id
		}
	}
	if v := c.Query("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &d
		}
	}
	if v := c.Query("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &d
		}
	}

	products, total, err := h.productService.GetProducts(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"products":   products,
		"pagination": newPagination(filter.Page, filter.Limit, total),
	})
}

// GetProduct handles GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid product id")
		return
	}

	product, err := h.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

// CreateProduct handles POST /api/products (admin)
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req.toModel())
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/products/:id (admin)
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid product id")
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	p := req.toModel()
	p.ID = id
	product, err := h.productService.UpdateProduct(c.Request.Context(), p)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id (admin)
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid product id")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Product deleted")
}

type updateStockRequest struct {
	// Pointer so that an explicit zero is accepted.
	Stock *int `json:"stock" binding:"required"`
}

// UpdateStock handles PATCH /api/products/:id/stock (admin)
func (h *Handlers) UpdateStock(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid product id")
		return
	}

	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Valid stock quantity is required")
		return
	}

	product, err := h.productService.UpdateStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, product)
}

type updateSalesCountRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateSalesCount handles PATCH /api/products/:id/sales (admin)
func (h *Handlers) UpdateSalesCount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.badRequest(c, "Invalid product id")
		return
	}

	var req updateSalesCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}

	if err := h.productService.UpdateSalesCount(c.Request.Context(), id, req.Quantity); err != nil {
		h.handleError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Sales count updated")
}

// ListCategories handles GET /api/categories
func (h *Handlers) ListCategories(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 50)

	categories, total, err := h.productService.ListCategories(c.Request.Context(), page, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"categories": categories,
		"pagination": newPagination(page, limit, total),
	})
}
