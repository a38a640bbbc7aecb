package models

import "time"

// CartItem is a (product, quantity) pairing inside a cart.
type CartItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// Cart is a per-user mutable list of cart items. Adding a product that
// is already present merges by summing quantities.
type Cart struct {
	UserID    string     `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"serializer:json"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Wishlist is a per-user set of product ids.
type Wishlist struct {
	UserID     string    `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	ProductIDs []string  `json:"product_ids" gorm:"serializer:json"`
	UpdatedAt  time.Time `json:"updated_at"`
}
