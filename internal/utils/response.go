package utils

import (
	"errors"

	"workpaper-web/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Response is the standard JSON envelope for non-paginated endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}
	return c.Status(status).JSON(response)
}

// DomainErrorResponse maps the domain error types onto status codes: parse
// failures are client errors, validation failures are unprocessable input,
// anything else is a server error.
func DomainErrorResponse(c *fiber.Ctx, message string, err error) error {
	var parseErr *models.ParseError
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &parseErr):
		return ErrorResponse(c, fiber.StatusBadRequest, message, err)
	case errors.As(err, &validationErr):
		return ErrorResponse(c, fiber.StatusUnprocessableEntity, message, err)
	default:
		return ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
}
