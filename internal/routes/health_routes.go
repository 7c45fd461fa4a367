package routes

import (
	"timeclock-sync/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func SetupHealthRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewHealthHandler(d.Store, d.Settings, d.Version, d.Log)

	api.Get("/health", hdl.Check)
}
