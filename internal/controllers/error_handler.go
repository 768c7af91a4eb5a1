package controllers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"hoagiehub/dto"
	"hoagiehub/internal/apperror"
)

// ErrorHandler renders every error as a dto.ErrorResponse. Internal errors
// are logged and their details withheld from the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	label := apperror.KindInternal.Label()
	message := "Internal server error"

	var appErr *apperror.Error
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		status = appErr.Kind.Status()
		label = appErr.Kind.Label()
		if appErr.Kind != apperror.KindInternal {
			message = appErr.Message
		}
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		label = "Error"
		message = fiberErr.Message
	}

	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", status,
			"request_id", requestID(c),
			"error", err)
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.OriginalURL(),
		Error:      label,
		Message:    message,
	})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
