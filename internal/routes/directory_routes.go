package routes

import (
	"timeclock-sync/internal/handler"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupDirectoryRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewDirectoryHandler(usecase.NewDirectoryUsecase(d.Store))

	api.Get("/departments", append(d.protected(), hdl.Departments)...)
	api.Get("/job_positions", append(d.protected(), hdl.JobPositions)...)
	api.Get("/schedules", append(d.protected(), hdl.Schedules)...)
}
