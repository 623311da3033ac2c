package utils

import (
	apperrors "ledger/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Respond sends a JSON response with the specified status code.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

// Success sends a successful JSON response.
func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Fail sends a DomainError body with the given status.
func Fail(c *fiber.Ctx, status int, err *apperrors.DomainError) error {
	return Respond(c, status, err)
}

// NotFound sends a JSON error response with status 404.
func NotFound(c *fiber.Ctx, err *apperrors.DomainError) error {
	return Fail(c, fiber.StatusNotFound, err)
}

// UnprocessableEntity sends a JSON error response with status 422.
func UnprocessableEntity(c *fiber.Ctx, err *apperrors.DomainError) error {
	return Fail(c, fiber.StatusUnprocessableEntity, err)
}

// InternalError sends a JSON error response with status 500.
func InternalError(c *fiber.Ctx, err *apperrors.DomainError) error {
	return Fail(c, fiber.StatusInternalServerError, err)
}

// ServiceUnavailable sends a JSON error response with status 503.
func ServiceUnavailable(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusServiceUnavailable, data)
}
