package response

import (
	apperrors "cardkeeper/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

// Accepted reports an operation that was dispatched but has not settled yet.
func Accepted(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// FromError maps a domain error code to a status code.
func FromError(c *fiber.Ctx, err error) error {
	switch apperrors.Code(err) {
	case apperrors.CodeValidation:
		return Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case apperrors.CodeUnauthorized:
		return Unauthorized(c)
	case apperrors.CodeUnavailable:
		return Error(c, fiber.StatusServiceUnavailable, err.Error())
	case apperrors.CodeOperationFailure:
		return Error(c, fiber.StatusBadGateway, err.Error())
	default:
		return ServerError(c, err.Error())
	}
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

func ValidationError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}
