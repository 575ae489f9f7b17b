package handler

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/usecase"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/response"
	"agricsmart/pkg/utils"
)

type AdminHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewAdminHandler(userUseCase *usecase.UserUseCase) *AdminHandler {
	return &AdminHandler{
		userUseCase: userUseCase,
	}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.ListUsers(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, params.Page, params.PageSize)
}

func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	userID := c.Param("id")

	var req struct {
		Status string `json:"status" validate:"required,oneof=active suspended"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.SetUserStatus(c.Request().Context(), userID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AdminHandler) SetUserRole(c echo.Context) error {
	userID := c.Param("id")

	var req struct {
		Role string `json:"role" validate:"required,oneof=Admin Seller Buyer Educator"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.SetUserRole(c.Request().Context(), userID, req.Role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
