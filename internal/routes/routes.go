package routes

import (
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/auth"
	"timeclock-sync/internal/middleware"
	"timeclock-sync/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Deps is everything the route groups need to build their handlers.
type Deps struct {
	Store    repository.Store
	Settings *config.APISettings
	Tokens   *auth.TokenManager
	Validate *validator.Validate
	Location *time.Location
	Log      *zap.Logger
	Version  string
	Clock    func() time.Time // nil means time.Now
}

func (d Deps) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

// protected is the middleware chain of every bearer-authenticated route.
func (d Deps) protected() []fiber.Handler {
	return []fiber.Handler{
		middleware.APIEnabled(d.Settings),
		middleware.Auth(d.Settings, d.Tokens, d.Log),
	}
}

// Setup mounts every route group under /api/v1.
func Setup(app *fiber.App, d Deps) {
	api := app.Group("/api/v1")

	SetupAuthRoutes(api, d)
	SetupHealthRoutes(api, d)
	SetupEmployeeRoutes(api, d)
	SetupDirectoryRoutes(api, d)
	SetupAttendanceRoutes(api, d)
	SetupSyncRoutes(api, d)
}
