package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ReturnWindowDays is how long after order creation a delivered order
// may still be returned.
const ReturnWindowDays = 7

// ReturnService handles return eligibility and refund records.
type ReturnService struct {
	returnRepo repositories.ReturnRepository
	orderRepo  repositories.OrderRepository
	publisher  EventPublisher
}

// NewReturnService creates a new ReturnService.
func NewReturnService(returnRepo repositories.ReturnRepository, orderRepo repositories.OrderRepository, publisher EventPublisher) *ReturnService {
	return &ReturnService{
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
		publisher:  publisher,
	}
}

// Create validates eligibility and opens a return request: the order
// must belong to the user, be exactly in status "delivered", and lie
// within the return window (elapsed whole days <= 7). On success the
// refund amount is copied from the order total and the order moves to
// return_requested, which also makes a second request for the same
// order fail the delivered-status check.
func (s *ReturnService) Create(userID, orderID, reason string) (*models.ReturnRequest, error) {
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, err
	}

	if order.Status != models.StatusDelivered {
		return nil, apperr.Invalid("only delivered orders can be returned")
	}

	daysSinceOrder := int(time.Since(order.CreatedAt).Hours() / 24)
	if daysSinceOrder > ReturnWindowDays {
		return nil, apperr.Invalid("return window has expired")
	}

	ret := &models.ReturnRequest{
		ID:           uuid.New().String(),
		OrderID:      orderID,
		UserID:       userID,
		Reason:       reason,
		Status:       models.ReturnRequested,
		RefundAmount: order.Total,
		CreatedAt:    time.Now(),
	}

	if err := s.returnRepo.Create(ret); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(orderID, models.StatusReturnRequested); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		body, err := json.Marshal(map[string]interface{}{
			"return_id":     ret.ID,
			"order_id":      orderID,
			"user_id":       userID,
			"refund_amount": ret.RefundAmount,
		})
		if err == nil {
			if err := s.publisher.Publish(eventExchange, eventReturnRequested, body); err != nil {
				log.Printf("Warning: failed to publish %s event: %v", eventReturnRequested, err)
			}
		}
	}

	return ret, nil
}

// ListForUser returns the user's return requests, newest first.
func (s *ReturnService) ListForUser(userID string) ([]models.ReturnRequest, error) {
	return s.returnRepo.GetByUser(userID)
}

// UpdateStatus advances a return request through
// requested -> approved -> picked_up -> refunded. Admin only.
func (s *ReturnService) UpdateStatus(returnID, statusStr string) error {
	status, err := ParseReturnStatus(statusStr)
	if err != nil {
		return err
	}
	ret, err := s.returnRepo.GetByID(returnID)
	if err != nil {
		return err
	}
	if err := ValidateReturnTransition(ret.Status, status); err != nil {
		return err
	}
	return s.returnRepo.UpdateStatus(returnID, status)
}
