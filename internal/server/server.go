package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/souqly/souqly-backend/internal/config"
	"github.com/souqly/souqly-backend/internal/handlers"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/middleware"
	"github.com/souqly/souqly-backend/internal/repository"
)

// Server owns the gin engine and the HTTP lifecycle.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	http     *http.Server
	logger   *logging.Logger
}

func New(cfg *config.Config, h *handlers.Handlers, tokens middleware.TokenParser, userRepo repository.UserRepository) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		logger:   logging.New("server"),
	}
	s.setupRoutes(tokens, userRepo)
	return s
}

func (s *Server) setupRoutes(tokens middleware.TokenParser, userRepo repository.UserRepository) {
	h := s.handlers

	s.router.GET("/health", h.Health)
	s.router.GET("/ready", h.Ready)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}

	api.GET("/products", h.ListProducts)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/products/:id/reviews", h.ListProductReviews)
	api.GET("/products/:id/reviews/summary", h.ReviewSummary)
	api.GET("/categories", h.ListCategories)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(tokens, userRepo))
	{
		cart := authed.Group("/cart")
		{
			cart.GET("", h.GetCart)
			cart.DELETE("", h.ClearCart)
			cart.GET("/count", h.CartItemsCount)
			cart.POST("/items", h.AddToCart)
			cart.PUT("/items/:id", h.UpdateCartItem)
			cart.DELETE("/items/:id", h.RemoveFromCart)
		}

		orders := authed.Group("/orders")
		{
			orders.POST("/checkout", h.Checkout)
			orders.GET("", h.ListOrders)
			orders.GET("/:id", h.GetOrder)
			orders.PUT("/:id/cancel", h.CancelOrder)
		}

		authed.POST("/products/:id/reviews", h.CreateReview)
		authed.DELETE("/reviews/:id", h.DeleteReview)

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", h.AdminListUsers)
			admin.GET("/users/:id", h.AdminGetUser)
			admin.PUT("/users/:id/status", h.AdminUpdateUserStatus)
			admin.PUT("/users/:id/role", h.AdminUpdateUserRole)

			admin.GET("/orders", h.AdminListOrders)
			admin.GET("/orders/:id", h.AdminGetOrder)
			admin.PUT("/orders/:id/status", h.AdminUpdateOrderStatus)

			admin.GET("/dashboard/stats", h.AdminDashboardStats)

			admin.POST("/categories", h.AdminCreateCategory)
			admin.PUT("/categories/:id", h.AdminUpdateCategory)
			admin.DELETE("/categories/:id", h.AdminDeleteCategory)
		}

		catalog := authed.Group("")
		catalog.Use(middleware.RequireAdmin())
		{
			catalog.POST("/products", h.CreateProduct)
			catalog.PUT("/products/:id", h.UpdateProduct)
			catalog.PATCH("/products/:id/stock", h.UpdateStock)
			catalog.PATCH("/products/:id/sales", h.UpdateSalesCount)
			catalog.DELETE("/products/:id", h.DeleteProduct)
		}
	}
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	s.logger.Info("Starting server", logging.Fields{"addr": addr})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
