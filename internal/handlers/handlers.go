package handlers

import (
	"database/sql"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/souqly/souqly-backend/internal/config"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/middleware"
	"github.com/souqly/souqly-backend/internal/models"
	"github.com/souqly/souqly-backend/internal/service"
)

// Handlers holds all HTTP handlers for the API.
type Handlers struct {
	authService    *service.AuthService
	productService *service.ProductService
	cartService    *service.CartService
	orderService   *service.OrderService
	adminService   *service.AdminService
	reviewService  *service.ReviewService
	db             *sql.DB
	config         *config.Config
	logger         *logging.Logger
}

func NewHandlers(
	authService *service.AuthService,
	productService *service.ProductService,
	cartService *service.CartService,
	orderService *service.OrderService,
	adminService *service.AdminService,
	reviewService *service.ReviewService,
	db *sql.DB,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		authService:    authService,
		productService: productService,
		cartService:    cartService,
		orderService:   orderService,
		adminService:   adminService,
		reviewService:  reviewService,
		db:             db,
		config:         cfg,
		logger:         logging.New("handlers"),
	}
}

// identity returns the authenticated identity. Routes behind the auth
// middleware always have one; the zero value only appears if a route is
// misregistered.
func identity(c *gin.Context) models.Identity {
	id, _ := middleware.IdentityFrom(c)
	return id
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
