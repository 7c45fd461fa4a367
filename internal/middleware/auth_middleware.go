package middleware

import (
	"errors"
	"strings"

	"timeclock-sync/config"
	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocalSubject is the c.Locals key holding the authenticated token subject.
const LocalSubject = "subject"

// Subject returns the token subject stored by Auth, or "" on public routes.
func Subject(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalSubject).(string)
	return s
}

// Auth requires an "Authorization: Bearer <token>" header carrying a valid, unexpired token.
func Auth(settings *config.APISettings, tokens *auth.TokenManager, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !settings.SigningAvailable() {
			return apperror.JWTUnavailable(auth.ErrNoSecret)
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return reject(c, log, apperror.Unauthorized(apperror.CodeMissingToken, "authorization header is required"), nil)
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return reject(c, log, apperror.Unauthorized(apperror.CodeInvalidTokenFormat,
				"authorization header must be 'Bearer <token>'"), nil)
		}

		claims, err := tokens.Parse(parts[1])
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrTokenExpired):
			return reject(c, log, apperror.Unauthorized(apperror.CodeTokenExpired, "token has expired"), err)
		case errors.Is(err, auth.ErrNoSecret):
			return apperror.JWTUnavailable(err)
		default:
			return reject(c, log, apperror.Unauthorized(apperror.CodeInvalidToken, "token is invalid"), err)
		}

		c.Locals(LocalSubject, claims.Subject)
		return c.Next()
	}
}

func reject(c *fiber.Ctx, log *zap.Logger, appErr *apperror.Error, cause error) error {
	fields := []zap.Field{
		zap.String("ip", c.IP()),
		zap.String("path", c.Path()),
		zap.String("code", appErr.Code),
	}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	log.Warn("request rejected", fields...)
	return appErr
}
