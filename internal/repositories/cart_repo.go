package repositories

import (
	"pasar/internal/models"
)

// CartRepository defines the interface for cart data access. Every
// mutation is atomic for the whole cart document, so concurrent edits
// from the same user cannot lose updates.
type CartRepository interface {
	// GetByUserID returns the user's cart, or an empty cart when the
	// user has none yet.
	GetByUserID(userID string) (*models.Cart, error)

	// AddItem adds (productID, qty) to the cart, merging with an
	// existing line for the same product by summing quantities.
	AddItem(userID, productID string, qty int) error

	// SetItemQuantity replaces the quantity of an existing line.
	// A quantity of zero removes the line.
	SetItemQuantity(userID, productID string, qty int) error

	// RemoveItem drops the line for productID, if present.
	RemoveItem(userID, productID string) error

	// Clear empties the cart.
	Clear(userID string) error
}

// WishlistRepository defines the interface for wishlist data access.
// Adds have set semantics: adding a product twice stores it once.
type WishlistRepository interface {
	GetByUserID(userID string) (*models.Wishlist, error)
	Add(userID, productID string) error
	Remove(userID, productID string) error
}
