package repositories

import (
	"pasar/internal/models"
)

// ProductFilter narrows and sorts a catalog listing. Zero values mean
// "no constraint". Search is a case-insensitive substring match over
// name and description.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Sort     string // price_low, price_high, rating; default newest first
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(filter ProductFilter) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
	Categories() ([]string, error)
	Count() (int64, error)

	// TryDecrementStock atomically decrements stock by qty only when
	// stock >= qty. It returns false (and leaves stock untouched) when
	// the product has insufficient stock. Check and decrement are a
	// single operation so concurrent orders cannot drive stock negative.
	TryDecrementStock(id string, qty int) (bool, error)

	// RestoreStock adds qty back, compensating a reservation that could
	// not be committed.
	RestoreStock(id string, qty int) error

	// SetRating updates the aggregate rating and review count.
	SetRating(id string, rating float64, reviewsCount int) error
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByProduct(productID string) ([]models.Review, error)
}
