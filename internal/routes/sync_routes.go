package routes

import (
	"timeclock-sync/internal/handler"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupSyncRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewSyncHandler(usecase.NewSyncUsecase(d.Store, d.Location, d.Log).WithClock(d.now))

	sync := api.Group("/sync", d.protected()...)
	sync.Get("/logs", hdl.Logs)
}
