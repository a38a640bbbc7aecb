package repositories

import (
	"pasar/internal/models"
)

// OrderRepository defines the interface for order data access. Orders
// are immutable after creation except for status and payment status.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)

	// GetByIDForUser returns the order only when it belongs to userID;
	// an order owned by someone else is reported as not found.
	GetByIDForUser(id, userID string) (*models.Order, error)

	// GetByUser lists a user's orders, newest first.
	GetByUser(userID string) ([]models.Order, error)

	// GetAll lists every order, newest first.
	GetAll() ([]models.Order, error)

	// GetByIdempotencyKey finds a user's order created with the given
	// idempotency key, for replay detection on client retries.
	GetByIdempotencyKey(userID, key string) (*models.Order, error)

	UpdateStatus(id string, status models.OrderStatus) error
	UpdatePayment(id string, payment models.PaymentStatus, status models.OrderStatus) error

	Count() (int64, error)

	// Revenue sums the totals of orders whose payment completed.
	Revenue() (float64, error)
}

// ReturnRepository defines the interface for return-request data access.
type ReturnRepository interface {
	Create(ret *models.ReturnRequest) error
	GetByID(id string) (*models.ReturnRequest, error)
	GetByUser(userID string) ([]models.ReturnRequest, error)
	UpdateStatus(id string, status models.ReturnStatus) error
}
