package routes

import (
	"timeclock-sync/internal/handler"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router, d Deps) {
	uc := usecase.NewAuthUsecase(d.Settings, d.Tokens, d.Log)
	hdl := handler.NewAuthHandler(uc)

	api.Post("/auth/login", hdl.Login)
}
