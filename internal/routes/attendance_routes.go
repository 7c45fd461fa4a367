package routes

import (
	"timeclock-sync/internal/handler"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(api fiber.Router, d Deps) {
	uc := usecase.NewAttendanceUsecase(d.Store, d.Validate, d.Location, d.Log).WithClock(d.now)
	hdl := handler.NewAttendanceHandler(uc)

	attendances := api.Group("/attendances", d.protected()...)
	attendances.Post("/", hdl.Create)
	attendances.Get("/", hdl.List)
}
