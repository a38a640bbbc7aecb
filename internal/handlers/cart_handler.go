package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/middleware"
	"pasar/internal/services"
)

// CartHandler handles HTTP requests for carts and wishlists.
type CartHandler struct {
	cartService *services.CartService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService, authService *services.AuthService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart and wishlist routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", middleware.AuthRequired(h.authService))
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/add", h.HandleAddToCart)
	cartRoutes.Put("/update", h.HandleUpdateCart)
	cartRoutes.Delete("/remove/:productId", h.HandleRemoveFromCart)
	cartRoutes.Delete("/clear", h.HandleClearCart)

	wishlistRoutes := router.Group("/wishlist", middleware.AuthRequired(h.authService))
	wishlistRoutes.Get("/", h.HandleGetWishlist)
	wishlistRoutes.Post("/add/:productId", h.HandleAddToWishlist)
	wishlistRoutes.Delete("/remove/:productId", h.HandleRemoveFromWishlist)
}

// HandleGetCart returns the caller's cart with populated products.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	lines, err := h.cartService.View(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": lines})
}

// CartItemRequest is the payload for cart add/update.
type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// HandleAddToCart adds a quantity of a product, merging duplicates.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	if err := h.cartService.Add(middleware.UserID(c), req.ProductID, req.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item added to cart"})
}

// HandleUpdateCart replaces a line's quantity; zero removes the line.
func (h *CartHandler) HandleUpdateCart(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	if err := h.cartService.Update(middleware.UserID(c), req.ProductID, req.Quantity); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart updated"})
}

// HandleRemoveFromCart drops a product from the cart.
func (h *CartHandler) HandleRemoveFromCart(c *fiber.Ctx) error {
	if err := h.cartService.Remove(middleware.UserID(c), c.Params("productId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.cartService.Clear(middleware.UserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

// HandleGetWishlist returns the caller's wishlisted products.
func (h *CartHandler) HandleGetWishlist(c *fiber.Ctx) error {
	products, err := h.cartService.Wishlist(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleAddToWishlist adds a product to the wishlist.
func (h *CartHandler) HandleAddToWishlist(c *fiber.Ctx) error {
	if err := h.cartService.AddToWishlist(middleware.UserID(c), c.Params("productId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Added to wishlist"})
}

// HandleRemoveFromWishlist drops a product from the wishlist.
func (h *CartHandler) HandleRemoveFromWishlist(c *fiber.Ctx) error {
	if err := h.cartService.RemoveFromWishlist(middleware.UserID(c), c.Params("productId")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}
