package routes

import (
	"timeclock-sync/internal/handler"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupEmployeeRoutes(api fiber.Router, d Deps) {
	hdl := handler.NewEmployeeHandler(usecase.NewDirectoryUsecase(d.Store))
	syncHdl := handler.NewSyncHandler(usecase.NewSyncUsecase(d.Store, d.Location, d.Log).WithClock(d.now))

	employees := api.Group("/employees", d.protected()...)
	employees.Get("/", hdl.List)
	employees.Get("/sync", syncHdl.Employees) // before /:id
	employees.Get("/by-number/:reg", hdl.GetByNumber)
	employees.Get("/:id<int>", hdl.GetByID) // deprecated
}
