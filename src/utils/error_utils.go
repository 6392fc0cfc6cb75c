// error_utils.go
package utils

import (
	"Backend-Worklink-007/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleValidationErrors sends the per-field error map with a 400.
func HandleValidationErrors(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
		Status: fiber.StatusBadRequest,
		Errors: errs,
	})
}
