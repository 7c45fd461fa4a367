package handler

import (
	"time"

	"timeclock-sync/internal/apperror"
	"timeclock-sync/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if err := h.uc.Ready(); err != nil {
		return err
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.InvalidJSON(err)
	}

	token, err := h.uc.Login(c.UserContext(), req.Username, req.Password, c.IP())
	if err != nil {
		return err
	}

	return success(c, fiber.Map{
		"token":      token.Value,
		"token_type": "Bearer",
		"expires_in": token.ExpiresIn(),
		"expires_at": token.ExpiresAt.Format(time.RFC3339),
		"username":   token.Subject,
	})
}
