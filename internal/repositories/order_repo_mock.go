package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pasar/internal/apperr"
	"pasar/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = order.CreatedAt
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.NotFound("order %s not found", id)
	}
	return &order, nil
}

// GetByIDForUser returns an order only when it belongs to userID.
func (r *MockOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok || order.UserID != userID {
		return nil, apperr.NotFound("order %s not found", id)
	}
	return &order, nil
}

// GetByUser lists a user's orders, newest first.
func (r *MockOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// GetAll lists every order, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

// GetByIdempotencyKey finds a user's order by idempotency key.
func (r *MockOrderRepository) GetByIdempotencyKey(userID, key string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.UserID == userID && order.IdempotencyKey == key {
			o := order
			return &o, nil
		}
	}
	return nil, apperr.NotFound("no order for idempotency key")
}

// UpdateStatus sets an order's fulfillment status.
func (r *MockOrderRepository) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperr.NotFound("order %s not found", id)
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// UpdatePayment sets the payment status and the fulfillment status.
func (r *MockOrderRepository) UpdatePayment(id string, payment models.PaymentStatus, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return apperr.NotFound("order %s not found", id)
	}
	order.PaymentStatus = payment
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}

// Count returns the number of orders.
func (r *MockOrderRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

// Revenue sums the totals of orders whose payment completed.
func (r *MockOrderRepository) Revenue() (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total float64
	for _, order := range r.orders {
		if order.PaymentStatus == models.PaymentCompleted {
			total += order.Total
		}
	}
	return total, nil
}

// SetCreatedAt backdates an order. Test helper for exercising the
// return window.
func (r *MockOrderRepository) SetCreatedAt(id string, t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order, ok := r.orders[id]; ok {
		order.CreatedAt = t
		r.orders[id] = order
	}
}

// MockReturnRepository is an in-memory implementation of ReturnRepository.
type MockReturnRepository struct {
	returns map[string]models.ReturnRequest
	mu      sync.RWMutex
}

// NewMockReturnRepository creates a new instance of MockReturnRepository.
func NewMockReturnRepository() *MockReturnRepository {
	return &MockReturnRepository{
		returns: make(map[string]models.ReturnRequest),
	}
}

// Create adds a new return request.
func (r *MockReturnRepository) Create(ret *models.ReturnRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	if ret.CreatedAt.IsZero() {
		ret.CreatedAt = time.Now()
	}
	ret.UpdatedAt = ret.CreatedAt
	r.returns[ret.ID] = *ret
	return nil
}

// GetByID returns a return request by its ID.
func (r *MockReturnRepository) GetByID(id string) (*models.ReturnRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret, ok := r.returns[id]
	if !ok {
		return nil, apperr.NotFound("return request %s not found", id)
	}
	return &ret, nil
}

// GetByUser lists a user's return requests, newest first.
func (r *MockReturnRepository) GetByUser(userID string) ([]models.ReturnRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var returns []models.ReturnRequest
	for _, ret := range r.returns {
		if ret.UserID == userID {
			returns = append(returns, ret)
		}
	}
	sort.Slice(returns, func(i, j int) bool { return returns[i].CreatedAt.After(returns[j].CreatedAt) })
	return returns, nil
}

// UpdateStatus sets a return request's status.
func (r *MockReturnRepository) UpdateStatus(id string, status models.ReturnStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret, ok := r.returns[id]
	if !ok {
		return apperr.NotFound("return request %s not found", id)
	}
	ret.Status = status
	ret.UpdatedAt = time.Now()
	r.returns[id] = ret
	return nil
}
