package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"
)

// AdminHandler handles the admin panel: catalog CRUD, order status
// management, return processing, and analytics. Every route passes
// through AdminRequired, the single admin policy point.
type AdminHandler struct {
	productService *services.ProductService
	orderService   *services.OrderService
	returnService  *services.ReturnService
	authService    *services.AuthService
	validate       *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	productService *services.ProductService,
	orderService *services.OrderService,
	returnService *services.ReturnService,
	authService *services.AuthService,
) *AdminHandler {
	return &AdminHandler{
		productService: productService,
		orderService:   orderService,
		returnService:  returnService,
		authService:    authService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	admin := router.Group("/admin", middleware.AuthRequired(h.authService), middleware.AdminRequired())
	admin.Post("/products", h.HandleCreateProduct)
	admin.Put("/products/:id", h.HandleUpdateProduct)
	admin.Delete("/products/:id", h.HandleDeleteProduct)
	admin.Get("/orders", h.HandleListAllOrders)
	admin.Put("/orders/:id/status", h.HandleUpdateOrderStatus)
	admin.Put("/returns/:id/status", h.HandleUpdateReturnStatus)
	admin.Get("/analytics", h.HandleAnalytics)
}

// HandleCreateProduct adds a product to the catalog.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(product); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	if err := h.productService.Create(&product); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces a product's catalog fields.
func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	if err := h.productService.Update(&product); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

// HandleDeleteProduct removes a product from the catalog.
func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.Delete(c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleListAllOrders lists every order, newest first.
func (h *AdminHandler) HandleListAllOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListAll()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(orders)
}

// StatusUpdateRequest is the payload for status changes.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order to a new status. The state
// machine rejects transitions outside its edge set.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	if err := h.orderService.UpdateStatus(c.Params("id"), req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order status updated"})
}

// HandleUpdateReturnStatus advances a return request.
func (h *AdminHandler) HandleUpdateReturnStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	if err := h.returnService.UpdateStatus(c.Params("id"), req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Return status updated"})
}

// HandleAnalytics returns store-wide totals.
func (h *AdminHandler) HandleAnalytics(c *fiber.Ctx) error {
	analytics, err := h.orderService.GetAnalytics()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(analytics)
}
