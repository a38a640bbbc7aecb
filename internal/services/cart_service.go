package services

import (
	"pasar/internal/apperr"
	"pasar/internal/models"
	"pasar/internal/repositories"
)

// CartService handles cart and wishlist business logic.
type CartService struct {
	cartRepo     repositories.CartRepository
	wishlistRepo repositories.WishlistRepository
	productRepo  repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, wishlistRepo repositories.WishlistRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// CartLine is a cart item populated with its live product record.
type CartLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Product   *models.Product `json:"product"`
}

// View returns the cart with each line populated with the current
// product. Lines whose product has since been deleted are dropped from
// the view.
func (s *CartService) View(userID string) ([]CartLine, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   product,
		})
	}
	return lines, nil
}

// Add puts (productID, qty) in the cart, merging with an existing line.
// The product must exist and have at least qty in stock.
func (s *CartService) Add(userID, productID string, qty int) error {
	if qty <= 0 {
		return apperr.Invalid("quantity must be positive")
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product.Stock < qty {
		return apperr.Invalid("insufficient stock for %s", product.Name)
	}
	return s.cartRepo.AddItem(userID, productID, qty)
}

// Update replaces a line's quantity; zero removes the line.
func (s *CartService) Update(userID, productID string, qty int) error {
	if qty < 0 {
		return apperr.Invalid("quantity must not be negative")
	}
	return s.cartRepo.SetItemQuantity(userID, productID, qty)
}

// Remove drops the line for productID.
func (s *CartService) Remove(userID, productID string) error {
	return s.cartRepo.RemoveItem(userID, productID)
}

// Clear empties the cart.
func (s *CartService) Clear(userID string) error {
	return s.cartRepo.Clear(userID)
}

// Wishlist returns the user's wishlisted products. Deleted products
// are dropped from the view.
func (s *CartService) Wishlist(userID string) ([]models.Product, error) {
	wishlist, err := s.wishlistRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(wishlist.ProductIDs))
	for _, id := range wishlist.ProductIDs {
		product, err := s.productRepo.GetByID(id)
		if err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

// AddToWishlist adds a product to the wishlist (set semantics). The
// product must exist.
func (s *CartService) AddToWishlist(userID, productID string) error {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return err
	}
	return s.wishlistRepo.Add(userID, productID)
}

// RemoveFromWishlist drops a product from the wishlist.
func (s *CartService) RemoveFromWishlist(userID, productID string) error {
	return s.wishlistRepo.Remove(userID, productID)
}
