package apperror

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Body renders the error envelope shared by every endpoint.
func Body(e *Error, now time.Time) fiber.Map {
	return fiber.Map{
		"status":    "error",
		"timestamp": now.Format(time.RFC3339),
		"error": fiber.Map{
			"code":    e.Code,
			"message": e.Message,
		},
	}
}

// Respond writes e as the JSON error envelope.
func Respond(c *fiber.Ctx, e *Error) error {
	return c.Status(e.Status).JSON(Body(e, time.Now()))
}

// FiberErrorHandler renders errors returned from handlers (or raised by fiber itself)
// with the error envelope. Unexpected errors are logged and surfaced as INTERNAL_ERROR.
func FiberErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusBadRequest, fiber.StatusMethodNotAllowed, fiber.StatusRequestEntityTooLarge:
				code = CodeInvalidParameter
			}
			return Respond(c, New(fe.Code, code, fe.Message))
		}

		appErr := From(err)
		if appErr.Status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("code", appErr.Code),
				zap.Error(err),
			)
		}
		return Respond(c, appErr)
	}
}
