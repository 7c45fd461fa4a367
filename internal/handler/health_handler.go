package handler

import (
	"context"
	"time"

	"timeclock-sync/config"
	"timeclock-sync/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

type HealthHandler struct {
	store    repository.Store
	settings *config.APISettings
	version  string
	log      *zap.Logger
}

func NewHealthHandler(store repository.Store, settings *config.APISettings, version string, log *zap.Logger) *HealthHandler {
	return &HealthHandler{store: store, settings: settings, version: version, log: log}
}

// Check always answers 200; the body tells whether the API can serve devices.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), pingTimeout)
	defer cancel()

	database := "ok"
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("database ping failed", zap.Error(err))
		database = "error"
	}

	return success(c, fiber.Map{
		"api_enabled":   h.settings.Enabled,
		"jwt_available": h.settings.SigningAvailable(),
		"database":      database,
		"version":       h.version,
	})
}
