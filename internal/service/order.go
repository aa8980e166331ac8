package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/clients"
	"github.com/souqly/souqly-backend/internal/events"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
	"github.com/souqly/souqly-backend/internal/repository"
)

// OrderService handles checkout and the user-facing order lifecycle.
type OrderService struct {
	orderRepo          repository.OrderRepository
	cartRepo           repository.CartRepository
	productCache       repository.ProductCache
	eventPublisher     events.OrderEventPublisher
	notificationClient clients.NotificationSender
	logger             *logging.Logger
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productCache repository.ProductCache,
	eventPublisher events.OrderEventPublisher,
	notificationClient clients.NotificationSender,
) *OrderService {
	return &OrderService{
		orderRepo:          orderRepo,
		cartRepo:           cartRepo,
		productCache:       productCache,
		eventPublisher:     eventPublisher,
		notificationClient: notificationClient,
		logger:             logging.New("order-service"),
	}
}

// Checkout converts the user's cart into an order. Validation runs against
// a snapshot of the cart; the repository re-checks stock with a guarded
// decrement inside the transaction, so a concurrent checkout can still fail
// cleanly after validation passes here.
func (s *OrderService) Checkout(ctx context.Context, userID int64, shipping models.ShippingInfo) (*models.OrderReceipt, error) {
	if err := validateShipping(shipping); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.NewValidation("Cart is empty")
	}

	total := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		if !item.ProductActive {
			return nil, apperrors.NewValidationf("Product %q is currently unavailable", item.ProductName)
		}
		if item.ProductStock < item.Quantity {
			return nil, apperrors.NewInsufficientStock(item.ProductName, item.ProductStock)
		}
		total = total.Add(item.ItemTotal())
	}

	order, err := s.orderRepo.CreateFromCart(ctx, userID, cart, total, shipping)
	if err != nil {
		s.logger.Error("Checkout failed", logging.Fields{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Order placed", logging.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.TotalAmount.String(),
		"items":    len(cart.Items),
	})

	// Post-commit side effects are best-effort.
	s.afterCheckout(ctx, order, cart)

	return &models.OrderReceipt{
		OrderID:     order.ID,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	}, nil
}

func (s *OrderService) afterCheckout(ctx context.Context, order *models.Order, cart *models.CartWithItems) {
	if s.productCache != nil {
		for i := range cart.Items {
			if err := s.productCache.Delete(ctx, cart.Items[i].ProductID); err != nil {
				s.logger.Debug("Cache invalidation failed", logging.Fields{
					"product_id": cart.Items[i].ProductID,
				})
			}
		}
	}
	if s.eventPublisher != nil {
		if err := s.eventPublisher.PublishOrderCreated(ctx, order); err != nil {
			s.logger.Error("Failed to publish order created event", logging.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			})
		}
	}
	s.notify(ctx, order)
}

func (s *OrderService) notify(ctx context.Context, order *models.Order) {
	if s.notificationClient == nil {
		return
	}
	if err := s.notificationClient.SendOrderNotification(ctx, clients.NotificationForStatus(order)); err != nil {
		s.logger.Error("Failed to send order notification", logging.Fields{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}
}

func validateShipping(shipping models.ShippingInfo) error {
	if shipping.Address == "" {
		return apperrors.NewValidation("Shipping address is required")
	}
	if shipping.City == "" {
		return apperrors.NewValidation("Shipping city is required")
	}
	return nil
}

// GetUserOrders lists the caller's orders.
func (s *OrderService) GetUserOrders(ctx context.Context, userID int64, page, limit int, status string) ([]models.OrderSummary, int, error) {
	page, limit = normalizePagination(page, limit)
	if status != "" && !models.OrderStatus(status).Valid() {
		return nil, 0, apperrors.NewValidationf("Invalid order status %q", status)
	}
	return s.orderRepo.GetUserOrders(ctx, userID, page, limit, status)
}

// GetUserOrderByID fetches one of the caller's orders with items.
func (s *OrderService) GetUserOrderByID(ctx context.Context, orderID, userID int64) (*models.OrderWithItems, error) {
	order, err := s.orderRepo.GetUserOrderByID(ctx, orderID, userID)
	if err == apperrors.ErrNotFound {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Order %d not found", orderID))
	}
	return order, err
}

// CancelOrder cancels a pending order owned by userID and restores its
// stock. Any order past pending, or not owned by the caller, is rejected.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID int64) error {
	cancelled, err := s.orderRepo.Cancel(ctx, orderID, userID)
	if err != nil {
		return err
	}
	if !cancelled {
		return apperrors.NewValidation("Cannot cancel this order")
	}

	order, err := s.orderRepo.GetUserOrderByID(ctx, orderID, userID)
	if err != nil {
		// The cancel committed; the follow-up read only feeds side effects.
		s.logger.Error("Failed to load cancelled order", logging.Fields{
			"order_id": orderID,
			"error":    err.Error(),
		})
		return nil
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.PublishOrderCancelled(ctx, &order.Order); err != nil {
			s.logger.Error("Failed to publish order cancelled event", logging.Fields{
				"order_id": orderID,
				"error":    err.Error(),
			})
		}
	}
	s.notify(ctx, &order.Order)
	return nil
}

func normalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
