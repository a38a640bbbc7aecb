package repositories

import (
	"sync"
	"time"

	"pasar/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.Mutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns the user's cart, or an empty cart when none exists.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return &cart, nil
}

func (r *MockCartRepository) mutate(userID string, fn func(items []models.CartItem) []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	cart.Items = fn(cart.Items)
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.UpdatedAt = time.Now()
	r.carts[userID] = cart
	return nil
}

// AddItem merges (productID, qty) into the cart by summation.
func (r *MockCartRepository) AddItem(userID, productID string, qty int) error {
	return r.mutate(userID, func(items []models.CartItem) []models.CartItem {
		return mergeCartItem(items, productID, qty)
	})
}

// SetItemQuantity replaces a line's quantity; zero removes the line.
func (r *MockCartRepository) SetItemQuantity(userID, productID string, qty int) error {
	return r.mutate(userID, func(items []models.CartItem) []models.CartItem {
		return setCartItemQuantity(items, productID, qty)
	})
}

// RemoveItem drops the line for productID.
func (r *MockCartRepository) RemoveItem(userID, productID string) error {
	return r.mutate(userID, func(items []models.CartItem) []models.CartItem {
		return setCartItemQuantity(items, productID, 0)
	})
}

// Clear empties the cart.
func (r *MockCartRepository) Clear(userID string) error {
	return r.mutate(userID, func([]models.CartItem) []models.CartItem {
		return []models.CartItem{}
	})
}

// MockWishlistRepository is an in-memory implementation of WishlistRepository.
type MockWishlistRepository struct {
	wishlists map[string][]string
	mu        sync.Mutex
}

// NewMockWishlistRepository creates a new instance of MockWishlistRepository.
func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{
		wishlists: make(map[string][]string),
	}
}

// GetByUserID returns the user's wishlist, or an empty one when none exists.
func (r *MockWishlistRepository) GetByUserID(userID string) (*models.Wishlist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, len(r.wishlists[userID]))
	copy(ids, r.wishlists[userID])
	return &models.Wishlist{UserID: userID, ProductIDs: ids}, nil
}

// Add inserts productID with set semantics.
func (r *MockWishlistRepository) Add(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.wishlists[userID] {
		if id == productID {
			return nil
		}
	}
	r.wishlists[userID] = append(r.wishlists[userID], productID)
	return nil
}

// Remove drops productID from the wishlist, if present.
func (r *MockWishlistRepository) Remove(userID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.wishlists[userID]
	out := ids[:0]
	for _, id := range ids {
		if id != productID {
			out = append(out, id)
		}
	}
	r.wishlists[userID] = out
	return nil
}
