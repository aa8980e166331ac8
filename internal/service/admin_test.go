package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/souqly/souqly-backend/internal/apperrors"
	"github.com/souqly/souqly-backend/internal/models"
)

func adminIdentity() models.Identity {
	return models.Identity{UserID: 1, Email: "admin@example.com", Role: models.RoleAdmin}
}

func newAdminService(userRepo *mockUserRepo, orderRepo *mockOrderRepo) *AdminService {
	return NewAdminService(userRepo, orderRepo, nil, nil, nil)
}

func TestUpdateUserStatusSelfDeactivation(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := newAdminService(userRepo, new(mockOrderRepo))

	err := svc.UpdateUserStatus(context.Background(), adminIdentity(), 1, false)

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 403, appErr.StatusCode)
	userRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestUpdateUserStatusSelfReactivationAllowed(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("UpdateStatus", mock.Anything, int64(1), true).Return(true, nil)
	svc := newAdminService(userRepo, new(mockOrderRepo))

	err := svc.UpdateUserStatus(context.Background(), adminIdentity(), 1, true)
	require.NoError(t, err)
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := newAdminService(userRepo, new(mockOrderRepo))

	err := svc.UpdateUserRole(context.Background(), adminIdentity(), 2, "superuser")

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 400, appErr.StatusCode)
	userRepo.AssertNotCalled(t, "UpdateRole")
}

func TestUpdateOrderStatusInvalidStatus(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	svc := newAdminService(new(mockUserRepo), orderRepo)

	_, err := svc.UpdateOrderStatus(context.Background(), 42, "refunded")

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 400, appErr.StatusCode)
	orderRepo.AssertNotCalled(t, "UpdateStatusWithInventory")
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	orderRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotFound)
	svc := newAdminService(new(mockUserRepo), orderRepo)

	_, err := svc.UpdateOrderStatus(context.Background(), 42, models.OrderStatusShipped)

	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestUpdateOrderStatusPublishesChange(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	publisher := new(mockEventPublisher)
	svc := NewAdminService(new(mockUserRepo), orderRepo, nil, nil, publisher)

	pending := &models.OrderWithItems{Order: models.Order{ID: 42, Status: models.OrderStatusPending}}
	shipped := &models.OrderWithItems{Order: models.Order{ID: 42, Status: models.OrderStatusShipped}}

	orderRepo.On("GetByID", mock.Anything, int64(42)).Return(pending, nil).Once()
	orderRepo.On("UpdateStatusWithInventory", mock.Anything, int64(42), models.OrderStatusShipped).
		Return(true, nil)
	orderRepo.On("GetByID", mock.Anything, int64(42)).Return(shipped, nil).Once()
	publisher.On("PublishOrderStatusChanged", mock.Anything, &shipped.Order, models.OrderStatusPending).
		Return(nil)

	order, err := svc.UpdateOrderStatus(context.Background(), 42, models.OrderStatusShipped)

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
	publisher.AssertExpectations(t)
}

func TestUpdateOrderStatusIdempotentTransitionSkipsEvent(t *testing.T) {
	orderRepo := new(mockOrderRepo)
	publisher := new(mockEventPublisher)
	svc := NewAdminService(new(mockUserRepo), orderRepo, nil, nil, publisher)

	shipped := &models.OrderWithItems{Order: models.Order{ID: 42, Status: models.OrderStatusShipped}}
	orderRepo.On("GetByID", mock.Anything, int64(42)).Return(shipped, nil)
	orderRepo.On("UpdateStatusWithInventory", mock.Anything, int64(42), models.OrderStatusShipped).
		Return(true, nil)

	_, err := svc.UpdateOrderStatus(context.Background(), 42, models.OrderStatusShipped)

	require.NoError(t, err)
	publisher.AssertNotCalled(t, "PublishOrderStatusChanged")
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	svc := newAdminService(new(mockUserRepo), new(mockOrderRepo))

	_, _, err := svc.ListOrders(context.Background(), 1, 10, "bogus")
	require.Error(t, err)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, 400, appErr.StatusCode)
}
