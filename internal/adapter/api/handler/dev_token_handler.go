package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"agricsmart/internal/domain/repository"
	"agricsmart/internal/infrastructure/firebase"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/response"
)

// DevTokenHandler issues locally signed tokens for development and testing.
// Its routes are only mounted outside production.
type DevTokenHandler struct {
	userRepo repository.UserRepository
	secret   string
}

var devTokenHandler *DevTokenHandler

func SetupDevTokenHandler(userRepo repository.UserRepository, secret string) {
	devTokenHandler = &DevTokenHandler{
		userRepo: userRepo,
		secret:   secret,
	}
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userRepo.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		return response.Error(c, errors.NotFound("User", err))
	}

	token, err := firebase.GenerateDevToken(user.ID, h.secret, 24*time.Hour)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
