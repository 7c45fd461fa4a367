package middleware

import (
	"timeclock-sync/config"
	"timeclock-sync/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// APIEnabled answers 503 API_DISABLED while the attendance API is switched off.
func APIEnabled(settings *config.APISettings) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !settings.Enabled {
			return apperror.APIDisabled()
		}
		return c.Next()
	}
}
