package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/middleware"
	"pasar/internal/services"
)

// OrderHandler handles HTTP requests for orders and returns.
type OrderHandler struct {
	orderService  *services.OrderService
	returnService *services.ReturnService
	authService   *services.AuthService
	validate      *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, returnService *services.ReturnService, authService *services.AuthService) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		returnService: returnService,
		authService:   authService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the order and return routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders", middleware.AuthRequired(h.authService))
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleListOrders)
	orderRoutes.Get("/:id", h.HandleGetOrder)
	orderRoutes.Post("/:id/payment", h.HandleProcessPayment)

	returnRoutes := router.Group("/returns", middleware.AuthRequired(h.authService))
	returnRoutes.Post("/", h.HandleCreateReturn)
	returnRoutes.Get("/", h.HandleListReturns)
}

// HandleCreateOrder runs the order workflow. The optional
// Idempotency-Key header makes client retries safe: a repeat with the
// same key returns the already-created order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var in services.CreateOrderInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(in); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}
	in.IdempotencyKey = c.Get("Idempotency-Key")

	order, err := h.orderService.Create(middleware.UserID(c), in)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleListOrders lists the caller's orders, newest first.
func (h *OrderHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListForUser(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrder returns one of the caller's orders.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.orderService.GetForUser(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// HandleProcessPayment flips the order's payment status. This endpoint
// simulates a gateway: it always succeeds and is safe to repeat.
func (h *OrderHandler) HandleProcessPayment(c *fiber.Ctx) error {
	order, err := h.orderService.ProcessPayment(middleware.UserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":  "Payment successful",
		"order_id": order.ID,
	})
}

// ReturnRequestBody is the payload for opening a return.
type ReturnRequestBody struct {
	OrderID string `json:"order_id" validate:"required"`
	Reason  string `json:"reason" validate:"required,max=2000"`
}

// HandleCreateReturn opens a return request for a delivered order.
func (h *OrderHandler) HandleCreateReturn(c *fiber.Ctx) error {
	var req ReturnRequestBody
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	ret, err := h.returnService.Create(middleware.UserID(c), req.OrderID, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ret)
}

// HandleListReturns lists the caller's return requests.
func (h *OrderHandler) HandleListReturns(c *fiber.Ctx) error {
	returns, err := h.returnService.ListForUser(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(returns)
}
