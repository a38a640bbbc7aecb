package models

import "time"

// OrderStatus is the fulfillment state of an order. Valid transitions
// are defined by the state machine in the services package.
type OrderStatus string

const (
	StatusOrdered         OrderStatus = "ordered"
	StatusProcessed       OrderStatus = "processed"
	StatusShipped         OrderStatus = "shipped"
	StatusOutForDelivery  OrderStatus = "out_for_delivery"
	StatusDelivered       OrderStatus = "delivered"
	StatusCancelled       OrderStatus = "cancelled"
	StatusReturnRequested OrderStatus = "return_requested"
)

// PaymentStatus tracks payment independently of fulfillment status.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// OrderItem is a frozen copy of product data captured at order-creation
// time. Later catalog edits never change it.
type OrderItem struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"` // Unit price at the time of order
}

// Order is an immutable record of a purchase. Only Status and
// PaymentStatus are mutated after creation.
type Order struct {
	ID              string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string        `json:"user_id" gorm:"index"`
	Items           []OrderItem   `json:"items" gorm:"serializer:json"`
	Subtotal        float64       `json:"subtotal"`
	Shipping        float64       `json:"shipping"`
	Discount        float64       `json:"discount"`
	Total           float64       `json:"total"`
	Status          OrderStatus   `json:"status" gorm:"type:varchar(32)"`
	PaymentMethod   string        `json:"payment_method"`
	PaymentStatus   PaymentStatus `json:"payment_status" gorm:"type:varchar(16)"`
	ShippingAddress Address       `json:"shipping_address" gorm:"serializer:json"`
	TrackingID      string        `json:"tracking_id"`
	IdempotencyKey  string        `json:"-" gorm:"type:varchar(128);index"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
