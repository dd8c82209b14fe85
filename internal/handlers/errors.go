package handlers

import (
	"errors"
	"fmt"
	"time"

	"blogapi/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errorResponse is the JSON body for every error the API returns.
type errorResponse struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// writeError maps a service error onto an HTTP status. Anything outside the
// taxonomy is an opaque internal failure.
func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenMalformed):
		status = fiber.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		status = fiber.StatusConflict
	}

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Internal server error"
	}

	return c.Status(status).JSON(errorResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// writeValidationError renders a per-field error map for a failed request
// body validation.
func writeValidationError(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
		Status:    fiber.StatusBadRequest,
		Message:   "Validation failed",
		Errors:    errorMessages,
		Timestamp: time.Now(),
	})
}
