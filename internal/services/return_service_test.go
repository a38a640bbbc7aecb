package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
	"pasar/internal/services"
)

type returnFixture struct {
	orders  *repositories.MockOrderRepository
	returns *repositories.MockReturnRepository
	service *services.ReturnService
}

func newReturnFixture(t *testing.T) *returnFixture {
	t.Helper()
	f := &returnFixture{
		orders:  repositories.NewMockOrderRepository(),
		returns: repositories.NewMockReturnRepository(),
	}
	f.service = services.NewReturnService(f.returns, f.orders, nil)
	return f
}

// seedOrder stores an order in the given status, created daysAgo days
// in the past.
func (f *returnFixture) seedOrder(t *testing.T, id, userID string, status models.OrderStatus, total float64, daysAgo int) {
	t.Helper()
	err := f.orders.Create(&models.Order{
		ID:            id,
		UserID:        userID,
		Items:         []models.OrderItem{{ProductID: "prod-1", ProductName: "Headphones", Quantity: 1, Price: total}},
		Total:         total,
		Status:        status,
		PaymentStatus: models.PaymentCompleted,
	})
	require.NoError(t, err)
	f.orders.SetCreatedAt(id, time.Now().Add(-time.Duration(daysAgo)*24*time.Hour))
}

func TestReturnService_CreateWithinWindow(t *testing.T) {
	f := newReturnFixture(t)
	f.seedOrder(t, "order-1", "user-1", models.StatusDelivered, 450.0, 6)

	ret, err := f.service.Create("user-1", "order-1", "damaged on arrival")
	require.NoError(t, err)

	assert.Equal(t, models.ReturnRequested, ret.Status)
	assert.Equal(t, 450.0, ret.RefundAmount)
	assert.Equal(t, "order-1", ret.OrderID)
	assert.Equal(t, "damaged on arrival", ret.Reason)

	// The order moved to return_requested.
	order, err := f.orders.GetByID("order-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReturnRequested, order.Status)
}

func TestReturnService_WindowExpired(t *testing.T) {
	f := newReturnFixture(t)
	f.seedOrder(t, "order-1", "user-1", models.StatusDelivered, 450.0, 8)

	_, err := f.service.Create("user-1", "order-1", "changed my mind")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "return window has expired")

	// The order is untouched.
	order, err := f.orders.GetByID("order-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, order.Status)
}

func TestReturnService_OnlyDeliveredOrders(t *testing.T) {
	f := newReturnFixture(t)
	// Fresh order, well inside the window, but not delivered.
	f.seedOrder(t, "order-1", "user-1", models.StatusOrdered, 450.0, 0)

	_, err := f.service.Create("user-1", "order-1", "no longer needed")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "only delivered orders can be returned")
}

func TestReturnService_SecondRequestFails(t *testing.T) {
	f := newReturnFixture(t)
	f.seedOrder(t, "order-1", "user-1", models.StatusDelivered, 450.0, 1)

	_, err := f.service.Create("user-1", "order-1", "damaged")
	require.NoError(t, err)

	// The order is no longer delivered, so a repeat fails the status check.
	_, err = f.service.Create("user-1", "order-1", "damaged")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestReturnService_WrongUser(t *testing.T) {
	f := newReturnFixture(t)
	f.seedOrder(t, "order-1", "user-1", models.StatusDelivered, 450.0, 1)

	_, err := f.service.Create("user-2", "order-1", "not mine")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestReturnService_UpdateStatus(t *testing.T) {
	f := newReturnFixture(t)
	f.seedOrder(t, "order-1", "user-1", models.StatusDelivered, 450.0, 1)

	ret, err := f.service.Create("user-1", "order-1", "damaged")
	require.NoError(t, err)

	require.NoError(t, f.service.UpdateStatus(ret.ID, "approved"))
	require.NoError(t, f.service.UpdateStatus(ret.ID, "picked_up"))
	require.NoError(t, f.service.UpdateStatus(ret.ID, "refunded"))

	// Refunded is terminal, and skipping steps is rejected.
	err = f.service.UpdateStatus(ret.ID, "approved")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestReturnService_ListForUser(t *testing.T) {
	f := newReturnFixture(t)
	f.seedOrder(t, "order-1", "user-1", models.StatusDelivered, 450.0, 1)
	f.seedOrder(t, "order-2", "user-2", models.StatusDelivered, 100.0, 1)

	_, err := f.service.Create("user-1", "order-1", "damaged")
	require.NoError(t, err)
	_, err = f.service.Create("user-2", "order-2", "wrong size")
	require.NoError(t, err)

	mine, err := f.service.ListForUser("user-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "order-1", mine[0].OrderID)
}
