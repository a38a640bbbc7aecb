package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pasar/internal/apperr"
)

// writeError maps the error taxonomy onto HTTP statuses and emits the
// structured error body every failing endpoint returns.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
	case apperr.KindInvalid:
		status = fiber.StatusBadRequest
	case apperr.KindUnauthorized:
		status = fiber.StatusUnauthorized
	case apperr.KindForbidden:
		status = fiber.StatusForbidden
	}

	message := "Internal server error"
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind != apperr.KindInternal {
		message = e.Message
	}

	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"kind":    string(apperr.KindOf(err)),
	})
}

// badRequest reports a body that could not be parsed or validated.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"kind":    string(apperr.KindInvalid),
	})
}
