package models

import "time"

// Product represents a catalog entry. Stock never goes negative; the
// only writers are admin edits and the order workflow's conditional
// decrement.
type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string    `json:"name" validate:"required,min=2,max=200"`
	Description   string    `json:"description" validate:"omitempty,max=2000"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	OriginalPrice float64   `json:"original_price,omitempty" validate:"omitempty,gt=0"`
	Category      string    `json:"category" validate:"required,max=100"`
	Brand         string    `json:"brand" validate:"required,max=100"`
	Images        []string  `json:"images" gorm:"serializer:json"`
	Stock         int       `json:"stock" validate:"gte=0"`
	Rating        float64   `json:"rating"`
	ReviewsCount  int       `json:"reviews_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FirstImage returns the product's primary image URL, or "" when the
// product has no images.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Review is a customer review attached to a product. Adding one
// recomputes the product's aggregate rating.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index"`
	UserName  string    `json:"user_name"`
	ProductID string    `json:"product_id" gorm:"index"`
	Rating    int       `json:"rating" validate:"required,min=1,max=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=2000"`
	CreatedAt time.Time `json:"created_at"`
}

// Category is a derived view over the distinct product categories.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
