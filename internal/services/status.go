package services

import (
	"pasar/internal/apperr"
	"pasar/internal/models"
)

// orderTransitions is the authoritative edge set for order fulfillment.
// cancelled and return_requested are terminal; return progress past
// return_requested is tracked on the ReturnRequest itself.
var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusOrdered:         {models.StatusProcessed, models.StatusCancelled},
	models.StatusProcessed:       {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:         {models.StatusOutForDelivery, models.StatusCancelled},
	models.StatusOutForDelivery:  {models.StatusDelivered, models.StatusCancelled},
	models.StatusDelivered:       {models.StatusReturnRequested, models.StatusCancelled},
	models.StatusCancelled:       {},
	models.StatusReturnRequested: {},
}

var returnTransitions = map[models.ReturnStatus][]models.ReturnStatus{
	models.ReturnRequested: {models.ReturnApproved},
	models.ReturnApproved:  {models.ReturnPickedUp},
	models.ReturnPickedUp:  {models.ReturnRefunded},
	models.ReturnRefunded:  {},
}

// ParseOrderStatus validates a status string from the outside world.
func ParseOrderStatus(s string) (models.OrderStatus, error) {
	status := models.OrderStatus(s)
	if _, ok := orderTransitions[status]; !ok {
		return "", apperr.Invalid("unknown order status %q", s)
	}
	return status, nil
}

// ParseReturnStatus validates a return-status string from the outside world.
func ParseReturnStatus(s string) (models.ReturnStatus, error) {
	status := models.ReturnStatus(s)
	if _, ok := returnTransitions[status]; !ok {
		return "", apperr.Invalid("unknown return status %q", s)
	}
	return status, nil
}

// CanTransition reports whether from -> to is in the order edge set.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition rejects order transitions outside the edge set,
// naming the offending transition.
func ValidateTransition(from, to models.OrderStatus) error {
	if !CanTransition(from, to) {
		return apperr.Invalid("invalid status transition %s -> %s", from, to)
	}
	return nil
}

// ValidateReturnTransition rejects return-status transitions outside
// the edge set.
func ValidateReturnTransition(from, to models.ReturnStatus) error {
	for _, next := range returnTransitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.Invalid("invalid return status transition %s -> %s", from, to)
}
