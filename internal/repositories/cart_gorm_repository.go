package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"pasar/internal/models"
)

// GORMCartRepository is a GORM implementation of CartRepository. Each
// mutation runs as a read-modify-write of the single cart row inside a
// transaction, which makes the whole cart document the unit of
// atomicity.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetByUserID returns the user's cart, or an empty cart when none exists.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
		}
		return nil, fmt.Errorf("failed to get cart for user %s: %w", userID, err)
	}
	return &cart, nil
}

func (r *GORMCartRepository) mutate(userID string, fn func(items []models.CartItem) []models.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.First(&cart, "user_id = ?", userID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
		case err != nil:
			return fmt.Errorf("failed to load cart for user %s: %w", userID, err)
		}

		cart.Items = fn(cart.Items)
		if cart.Items == nil {
			cart.Items = []models.CartItem{}
		}
		cart.UpdatedAt = time.Now()

		if err := tx.Save(&cart).Error; err != nil {
			return fmt.Errorf("failed to save cart for user %s: %w", userID, err)
		}
		return nil
	})
}

// AddItem merges (productID, qty) into the cart by summation.
func (r *GORMCartRepository) AddItem(userID, productID string, qty int) error {
	return r.mutate(userID, func(items []models.CartItem) []models.CartItem {
		return mergeCartItem(items, productID, qty)
	})
}

// SetItemQuantity replaces a line's quantity; zero removes the line.
func (r *GORMCartRepository) SetItemQuantity(userID, productID string, qty int) error {
	return r.mutate(userID, func(items []models.CartItem) []models.CartItem {
		return setCartItemQuantity(items, productID, qty)
	})
}

// RemoveItem drops the line for productID.
func (r *GORMCartRepository) RemoveItem(userID, productID string) error {
	return r.mutate(userID, func(items []models.CartItem) []models.CartItem {
		return setCartItemQuantity(items, productID, 0)
	})
}

// Clear empties the cart.
func (r *GORMCartRepository) Clear(userID string) error {
	return r.mutate(userID, func([]models.CartItem) []models.CartItem {
		return []models.CartItem{}
	})
}

// mergeCartItem sums qty into an existing line or appends a new one.
func mergeCartItem(items []models.CartItem, productID string, qty int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += qty
			return items
		}
	}
	return append(items, models.CartItem{ProductID: productID, Quantity: qty})
}

// setCartItemQuantity replaces a line's quantity, removing it at zero.
func setCartItemQuantity(items []models.CartItem, productID string, qty int) []models.CartItem {
	out := items[:0]
	for _, item := range items {
		if item.ProductID == productID {
			if qty > 0 {
				item.Quantity = qty
				out = append(out, item)
			}
			continue
		}
		out = append(out, item)
	}
	return out
}

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{db: db}
}

// GetByUserID returns the user's wishlist, or an empty one when none exists.
func (r *GORMWishlistRepository) GetByUserID(userID string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.First(&wishlist, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Wishlist{UserID: userID, ProductIDs: []string{}}, nil
		}
		return nil, fmt.Errorf("failed to get wishlist for user %s: %w", userID, err)
	}
	return &wishlist, nil
}

func (r *GORMWishlistRepository) mutate(userID string, fn func(ids []string) []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var wishlist models.Wishlist
		err := tx.First(&wishlist, "user_id = ?", userID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			wishlist = models.Wishlist{UserID: userID, ProductIDs: []string{}}
		case err != nil:
			return fmt.Errorf("failed to load wishlist for user %s: %w", userID, err)
		}

		wishlist.ProductIDs = fn(wishlist.ProductIDs)
		if wishlist.ProductIDs == nil {
			wishlist.ProductIDs = []string{}
		}
		wishlist.UpdatedAt = time.Now()

		if err := tx.Save(&wishlist).Error; err != nil {
			return fmt.Errorf("failed to save wishlist for user %s: %w", userID, err)
		}
		return nil
	})
}

// Add inserts productID with set semantics.
func (r *GORMWishlistRepository) Add(userID, productID string) error {
	return r.mutate(userID, func(ids []string) []string {
		for _, id := range ids {
			if id == productID {
				return ids
			}
		}
		return append(ids, productID)
	})
}

// Remove drops productID from the wishlist, if present.
func (r *GORMWishlistRepository) Remove(userID, productID string) error {
	return r.mutate(userID, func(ids []string) []string {
		out := ids[:0]
		for _, id := range ids {
			if id != productID {
				out = append(out, id)
			}
		}
		return out
	})
}
