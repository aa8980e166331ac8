package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/souqly/souqly-backend/internal/config"
	"github.com/souqly/souqly-backend/internal/logging"
	"github.com/souqly/souqly-backend/internal/models"
)

var _ NotificationSender = (*HTTPNotificationClient)(nil)

// OrderNotification is the payload sent to the notification service after
// an order lifecycle change.
type OrderNotification struct {
	UserID  int64  `json:"user_id"`
	Type    string `json:"type"`
	OrderID int64  `json:"order_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NotificationSender delivers order notifications. Delivery is best-effort;
// callers log failures and move on.
type NotificationSender interface {
	SendOrderNotification(ctx context.Context, n *OrderNotification) error
}

// HTTPNotificationClient implements NotificationSender over HTTP.
type HTTPNotificationClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *logging.Logger
}

func NewHTTPNotificationClient(cfg config.ServiceConfig) *HTTPNotificationClient {
	return &HTTPNotificationClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logging.New("notification-client"),
	}
}

func (c *HTTPNotificationClient) SendOrderNotification(ctx context.Context, n *OrderNotification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to send notification", logging.Fields{
			"user_id": n.UserID,
			"error":   err.Error(),
		})
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	c.logger.Debug("Notification sent", logging.Fields{
		"user_id":  n.UserID,
		"type":     n.Type,
		"order_id": n.OrderID,
	})
	return nil
}

// NotificationForStatus builds the user-facing message for an order status.
func NotificationForStatus(order *models.Order) *OrderNotification {
	return &OrderNotification{
		UserID:  order.UserID,
		Type:    "order_status",
		OrderID: order.ID,
		Status:  string(order.Status),
		Message: fmt.Sprintf("Your order #%d is now %s", order.ID, order.Status),
	}
}
