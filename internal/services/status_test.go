package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/services"
)

func TestOrderStatusHappyPath(t *testing.T) {
	path := []models.OrderStatus{
		models.StatusOrdered,
		models.StatusProcessed,
		models.StatusShipped,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.NoError(t, services.ValidateTransition(path[i], path[i+1]),
			"expected %s -> %s to be legal", path[i], path[i+1])
	}
}

func TestOrderStatusCancellation(t *testing.T) {
	cancellable := []models.OrderStatus{
		models.StatusOrdered,
		models.StatusProcessed,
		models.StatusShipped,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for _, from := range cancellable {
		assert.True(t, services.CanTransition(from, models.StatusCancelled))
	}

	// Terminal states stay terminal.
	assert.False(t, services.CanTransition(models.StatusCancelled, models.StatusOrdered))
	assert.False(t, services.CanTransition(models.StatusReturnRequested, models.StatusDelivered))
}

func TestOrderStatusRejectsIllegalTransitions(t *testing.T) {
	err := services.ValidateTransition(models.StatusOrdered, models.StatusDelivered)
	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "ordered -> delivered")

	// Skipping backwards is equally illegal.
	assert.Error(t, services.ValidateTransition(models.StatusShipped, models.StatusOrdered))
	// Only delivered orders can enter the return branch.
	assert.Error(t, services.ValidateTransition(models.StatusShipped, models.StatusReturnRequested))
}

func TestParseOrderStatus(t *testing.T) {
	status, err := services.ParseOrderStatus("shipped")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusShipped, status)

	_, err = services.ParseOrderStatus("teleported")
	assert.Error(t, err)
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestReturnStatusTransitions(t *testing.T) {
	assert.NoError(t, services.ValidateReturnTransition(models.ReturnRequested, models.ReturnApproved))
	assert.NoError(t, services.ValidateReturnTransition(models.ReturnApproved, models.ReturnPickedUp))
	assert.NoError(t, services.ValidateReturnTransition(models.ReturnPickedUp, models.ReturnRefunded))

	assert.Error(t, services.ValidateReturnTransition(models.ReturnRequested, models.ReturnRefunded))
	assert.Error(t, services.ValidateReturnTransition(models.ReturnRefunded, models.ReturnRequested))
}
