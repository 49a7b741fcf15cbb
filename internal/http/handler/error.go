package handler

import (
	"github.com/gofiber/fiber/v2"
)

// errorPayload is the standardized error response body. Upstream error
// detail never appears here; callers always get a stable, generic message.
type errorPayload struct {
	Message string `json:"message"`
}

// writeError writes a JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Message: message})
}

// ErrorHandler returns a Fiber global error handler that standardizes error
// responses for errors escaping the handlers (routing, body limits, panics
// recovered by fiber).
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "method not allowed")
		default:
			return writeError(c, status, "internal server error")
		}
	}
}
