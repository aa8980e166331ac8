package service

import (
	"context"
	"fmt"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/events"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
	"github.com/souqly/souqly-backend/internal/repository"
)

// AdminService backs the admin surface: user management, order management
// with inventory-aware status updates, dashboard stats and categories.
type AdminService struct {
	userRepo       repository.UserRepository
	orderRepo      repository.OrderRepository
	categoryRepo   repository.CategoryRepository
	statsRepo      repository.StatsRepository
	eventPublisher events.OrderEventPublisher
	logger         *logging.Logger
}

func NewAdminService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	categoryRepo repository.CategoryRepository,
	statsRepo repository.StatsRepository,
	eventPublisher events.OrderEventPublisher,
) *AdminService {
	return &AdminService{
		userRepo:       userRepo,
		orderRepo:      orderRepo,
		categoryRepo:   categoryRepo,
		statsRepo:      statsRepo,
		eventPublisher: eventPublisher,
		logger:         logging.New("admin-service"),
	}
}

// ListUsers lists accounts, optionally filtered by a search term matching
// name or email.
func (s *AdminService) ListUsers(ctx context.Context, page, limit int, search string) ([]models.SafeUser, int, error) {
	page, limit = normalizePagination(page, limit)
	if search != "" {
		return s.userRepo.Search(ctx, search, page, limit)
	}
	return s.userRepo.List(ctx, page, limit)
}

func (s *AdminService) GetUser(ctx context.Context, userID int64) (*models.SafeUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewNotFound(fmt.Sprintf("User %d not found", userID))
	}
	if err != nil {
		return nil, err
	}
	safe := user.Safe()
	return &safe, nil
}

// UpdateUserStatus toggles an account's active flag. Admins cannot
// deactivate their own account.
func (s *AdminService) UpdateUserStatus(ctx context.Context, actor models.Identity, userID int64, active bool) error {
	if userID == actor.UserID && !active {
		return apperrors.NewAuthorization("You cannot deactivate your own account")
	}

	updated, err := s.userRepo.UpdateStatus(ctx, userID, active)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NewNotFound(fmt.Sprintf("User %d not found", userID))
	}

	s.logger.Info("User status updated", logging.Fields{
		"user_id": userID,
		"active":  active,
		"by":      actor.UserID,
	})
	return nil
}

func (s *AdminService) UpdateUserRole(ctx context.Context, actor models.Identity, userID int64, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return apperrors.NewValidationf("Invalid role %q", role)
	}

	updated, err := s.userRepo.UpdateRole(ctx, userID, role)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.NewNotFound(fmt.Sprintf("User %d not found", userID))
	}

	s.logger.Info("User role updated", logging.Fields{
		"user_id": userID,
		"role":    role,
		"by":      actor.UserID,
	})
	return nil
}

// ListOrders lists all orders with customer details.
func (s *AdminService) ListOrders(ctx context.Context, page, limit int, status string) ([]models.OrderSummary, int, error) {
	page, limit = normalizePagination(page, limit)
	if status != "" && !models.OrderStatus(status).Valid() {
		return nil, 0, apperrors.NewValidationf("Invalid order status %q", status)
	}
	return s.orderRepo.List(ctx, page, limit, status)
}

func (s *AdminService) GetOrder(ctx context.Context, orderID int64) (*models.OrderWithItems, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Order %d not found", orderID))
	}
	return order, err
}

// UpdateOrderStatus moves an order to newStatus. Stock adjustments implied
// by the transition commit with the status change or not at all; a
// transition that would oversell fails without changing the order.
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus) (*models.OrderWithItems, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationf("Invalid order status %q", newStatus)
	}

	previous, err := s.orderRepo.GetByID(ctx, orderID)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Order %d not found", orderID))
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.UpdateStatusWithInventory(ctx, orderID, newStatus)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Order %d not found", orderID))
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil && previous.Status != newStatus {
		if err := s.eventPublisher.PublishOrderStatusChanged(ctx, &order.Order, previous.Status); err != nil {
			s.logger.Error("Failed to publish status change event", logging.Fields{
				"order_id": orderID,
				"error":    err.Error(),
			})
		}
	}
	return order, nil
}

// DashboardStats assembles the admin dashboard in one response.
func (s *AdminService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	users, err := s.statsRepo.UserStats(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.statsRepo.ProductStats(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.statsRepo.OrderStats(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.statsRepo.RevenueStats(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.statsRepo.RecentOrders(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Users:        *users,
		Products:     *products,
		Orders:       *orders,
		Revenue:      *revenue,
		RecentOrders: recent,
	}, nil
}

func (s *AdminService) ListCategories(ctx context.Context, page, limit int) ([]models.Category, int, error) {
	page, limit = normalizePagination(page, limit)
	return s.categoryRepo.List(ctx, page, limit)
}

func (s *AdminService) CreateCategory(ctx context.Context, name, imageURL string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.NewValidation("Category name is required")
	}
	return s.categoryRepo.Create(ctx, name, imageURL)
}

func (s *AdminService) UpdateCategory(ctx context.Context, id int64, name, imageURL string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.NewValidation("Category name is required")
	}
	category, err := s.categoryRepo.Update(ctx, id, name, imageURL)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Category %d not found", id))
	}
	return category, err
}

func (s *AdminService) DeleteCategory(ctx context.Context, id int64) error {
	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NewNotFound(fmt.Sprintf("Category %d not found", id))
	}
	return nil
}
