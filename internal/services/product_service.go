package services

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"pasar/internal/models"
	"pasar/internal/repositories"
)

// ProductService handles catalog business logic: listing, reviews, and
// the admin-side CRUD.
type ProductService struct {
	productRepo repositories.ProductRepository
	reviewRepo  repositories.ReviewRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, reviewRepo repositories.ReviewRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
	}
}

// List retrieves products matching the filter.
func (s *ProductService) List(filter repositories.ProductFilter) ([]models.Product, error) {
	return s.productRepo.GetAll(filter)
}

// Get retrieves a single product by its ID.
func (s *ProductService) Get(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// Categories returns the distinct product categories with URL slugs.
func (s *ProductService) Categories() ([]models.Category, error) {
	names, err := s.productRepo.Categories()
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		categories = append(categories, models.Category{
			ID:   name,
			Name: name,
			Slug: strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		})
	}
	return categories, nil
}

// AddReview attaches a review to a product and recomputes the
// product's aggregate rating (mean, rounded to one decimal).
func (s *ProductService) AddReview(productID string, user *models.User, rating int, comment string) (*models.Review, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	review := &models.Review{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		UserName:  user.Name,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := math.Round(float64(sum)/float64(len(reviews))*10) / 10
	if err := s.productRepo.SetRating(productID, avg, len(reviews)); err != nil {
		return nil, err
	}

	return review, nil
}

// Reviews returns all reviews for a product.
func (s *ProductService) Reviews(productID string) ([]models.Review, error) {
	return s.reviewRepo.GetByProduct(productID)
}

// Create adds a product to the catalog. Admin only.
func (s *ProductService) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	return s.productRepo.Create(product)
}

// Update replaces a product's catalog fields. Admin only. Orders are
// unaffected: they carry frozen copies of the product data.
func (s *ProductService) Update(product *models.Product) error {
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	product.Rating = existing.Rating
	product.ReviewsCount = existing.ReviewsCount
	product.CreatedAt = existing.CreatedAt
	return s.productRepo.Update(product)
}

// Delete removes a product from the catalog. Admin only.
func (s *ProductService) Delete(id string) error {
	return s.productRepo.Delete(id)
}
