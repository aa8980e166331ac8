package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/souqly/souqly-backend/internal/clients"
	"github.com/souqly/souqly-backend/internal/config"
	"github.com/souqly/souqly-backend/internal/events"
	"github.com/souqly/souqly-backend/internal/handlers"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/repository"
	"github.com/souqly/souqly-backend/internal/server"
	"github.com/souqly/souqly-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New("souqly-backend")

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", logging.Fields{"error": err.Error()})
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := repository.Migrate(migrateCtx, db); err != nil {
		logger.Fatal("Migration failed", logging.Fields{"error": err.Error()})
	}

	userRepo := repository.NewPostgresUserRepository(db)
	productRepo := repository.NewPostgresProductRepository(db)
	cartRepo := repository.NewPostgresCartRepository(db)
	orderRepo := repository.NewPostgresOrderRepository(db)
	categoryRepo := repository.NewPostgresCategoryRepository(db)
	reviewRepo := repository.NewPostgresReviewRepository(db)
	statsRepo := repository.NewPostgresStatsRepository(db)

	var productCache repository.ProductCache
	if cfg.Features.EnableProductCaching {
		productCache = repository.NewRedisProductCache(cfg.Redis)
	}

	var eventPublisher events.OrderEventPublisher = events.NoopPublisher{}
	if cfg.Features.EnableOrderEvents {
		eventPublisher = events.NewKafkaPublisher(cfg.Kafka)
	}
	defer eventPublisher.Close()

	var notificationClient clients.NotificationSender
	if cfg.Features.EnableNotifications {
		notificationClient = clients.NewHTTPNotificationClient(cfg.Notification)
	}

	authService := service.NewAuthService(userRepo, cfg.Auth)
	productService := service.NewProductService(productRepo, categoryRepo, productCache)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, productCache, eventPublisher, notificationClient)
	adminService := service.NewAdminService(userRepo, orderRepo, categoryRepo, statsRepo, eventPublisher)
	reviewService := service.NewReviewService(reviewRepo, productRepo)

	h := handlers.NewHandlers(
		authService, productService, cartService,
		orderService, adminService, reviewService,
		db, cfg,
	)

	srv := server.New(cfg, h, authService, userRepo)

	go func() {
		logger.Info("Server starting", logging.Fields{
			"port":            cfg.Server.Port,
			"env":             cfg.Env,
			"product_caching": cfg.Features.EnableProductCaching,
			"order_events":    cfg.Features.EnableOrderEvents,
		})
		if err := srv.Run(); err != nil {
			logger.Fatal("Server failed", logging.Fields{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logging.Fields{"error": err.Error()})
	}

	logger.Info("Server exited", nil)
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
