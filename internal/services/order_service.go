package services

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// OrderService handles the order-creation workflow, the mocked payment
// step, and admin status updates.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	cartRepo    repositories.CartRepository
	userRepo    repositories.UserRepository
	publisher   EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	cartRepo repositories.CartRepository,
	userRepo repositories.UserRepository,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// OrderLineRequest is a requested (product, quantity) line.
type OrderLineRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput carries everything the order workflow needs.
// IdempotencyKey is optional; a repeated Create with the same key
// returns the previously created order instead of a duplicate.
type CreateOrderInput struct {
	Items           []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress models.Address     `json:"shipping_address" validate:"required"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
	DiscountCode    string             `json:"discount_code"`
	IdempotencyKey  string             `json:"-"`
}

// Create validates the requested lines against the live catalog,
// reserves stock, prices the order, persists it with status "ordered"
// and payment "pending", and clears the user's cart.
//
// Stock reservation uses the repository's conditional decrement, so two
// concurrent orders racing for the last unit cannot both win. If a
// later line fails to reserve, or the order cannot be persisted, every
// reservation made so far is restored (compensating rollback) and no
// order exists.
func (s *OrderService) Create(userID string, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Invalid("cart is empty")
	}

	if in.IdempotencyKey != "" {
		if existing, err := s.orderRepo.GetByIdempotencyKey(userID, in.IdempotencyKey); err == nil {
			return existing, nil
		} else if !apperr.IsNotFound(err) {
			return nil, err
		}
	}

	// Pre-flight validation: every product must exist and have enough
	// stock before anything is mutated.
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, apperr.Invalid("quantity for product %s must be positive", line.ProductID)
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < line.Quantity {
			return nil, apperr.Invalid("insufficient stock for %s", product.Name)
		}
		items = append(items, models.OrderItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.FirstImage(),
			Quantity:     line.Quantity,
			Price:        product.Price,
		})
	}

	lines := make([]PricedLine, len(items))
	for i, item := range items {
		lines[i] = PricedLine{UnitPrice: item.Price, Quantity: item.Quantity}
	}
	quote := PriceOrder(lines, in.DiscountCode)

	// Reserve stock. The conditional decrement re-checks availability
	// atomically, catching any stock change since the pre-flight pass.
	reserved := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		ok, err := s.productRepo.TryDecrementStock(item.ProductID, item.Quantity)
		if err != nil {
			s.releaseStock(reserved)
			return nil, err
		}
		if !ok {
			s.releaseStock(reserved)
			return nil, apperr.Invalid("insufficient stock for %s", item.ProductName)
		}
		reserved = append(reserved, item)
	}

	now := time.Now()
	order := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           items,
		Subtotal:        quote.Subtotal,
		Shipping:        quote.Shipping,
		Discount:        quote.Discount,
		Total:           quote.Total,
		Status:          models.StatusOrdered,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		ShippingAddress: in.ShippingAddress,
		TrackingID:      NewTrackingID(),
		IdempotencyKey:  in.IdempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orderRepo.Create(order); err != nil {
		s.releaseStock(reserved)
		return nil, err
	}

	if err := s.cartRepo.Clear(userID); err != nil {
		// The order stands; an uncleaned cart is an annoyance, not a
		// consistency violation.
		log.Printf("Warning: failed to clear cart for user %s: %v", userID, err)
	}

	s.publish(eventOrderCreated, map[string]interface{}{
		"order_id":    order.ID,
		"user_id":     order.UserID,
		"total":       order.Total,
		"status":      order.Status,
		"tracking_id": order.TrackingID,
	})

	return order, nil
}

// releaseStock restores reservations after a failed create.
func (s *OrderService) releaseStock(reserved []models.OrderItem) {
	for _, item := range reserved {
		if err := s.productRepo.RestoreStock(item.ProductID, item.Quantity); err != nil {
			log.Printf("Warning: failed to restore %d units of product %s: %v", item.Quantity, item.ProductID, err)
		}
	}
}

// ProcessPayment marks the order's payment completed and moves it to
// "processed". This is a simulation boundary: no gateway is contacted,
// the flip always succeeds, and repeating it is harmless.
func (s *OrderService) ProcessPayment(userID, orderID string) (*models.Order, error) {
	if _, err := s.orderRepo.GetByIDForUser(orderID, userID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdatePayment(orderID, models.PaymentCompleted, models.StatusProcessed); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// GetForUser returns one of the user's orders.
func (s *OrderService) GetForUser(userID, orderID string) (*models.Order, error) {
	return s.orderRepo.GetByIDForUser(orderID, userID)
}

// ListForUser returns the user's orders, newest first.
func (s *OrderService) ListForUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// ListAll returns every order, newest first. Admin only.
func (s *OrderService) ListAll() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// UpdateStatus moves an order to a new status, rejecting transitions
// outside the state machine's edge set. Admin only.
func (s *OrderService) UpdateStatus(orderID, statusStr string) error {
	status, err := ParseOrderStatus(statusStr)
	if err != nil {
		return err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if err := ValidateTransition(order.Status, status); err != nil {
		return err
	}
	if err := s.orderRepo.UpdateStatus(orderID, status); err != nil {
		return err
	}

	s.publish(eventOrderStatus, map[string]interface{}{
		"order_id": orderID,
		"from":     order.Status,
		"to":       status,
	})
	return nil
}

// Analytics summarizes store-wide totals for the admin dashboard.
type Analytics struct {
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProducts int64   `json:"total_products"`
	TotalUsers    int64   `json:"total_users"`
}

// GetAnalytics computes the admin dashboard counters. Revenue counts
// only orders whose payment completed.
func (s *OrderService) GetAnalytics() (*Analytics, error) {
	orders, err := s.orderRepo.Count()
	if err != nil {
		return nil, err
	}
	revenue, err := s.orderRepo.Revenue()
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.Count()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	return &Analytics{
		TotalOrders:   orders,
		TotalRevenue:  revenue,
		TotalProducts: products,
		TotalUsers:    users,
	}, nil
}

func (s *OrderService) publish(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(eventExchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}

// NewTrackingID mints an opaque, human-displayable tracking token of
// the form TRK followed by 10 uppercase hex characters.
func NewTrackingID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "TRK" + strings.ToUpper(hex[:10])
}
