package handler

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/usecase"
	"agricsmart/pkg/errors"
	"agricsmart/pkg/response"
)

type AdvisoryHandler struct {
	advisoryUseCase *usecase.AdvisoryUseCase
}

func NewAdvisoryHandler(advisoryUseCase *usecase.AdvisoryUseCase) *AdvisoryHandler {
	return &AdvisoryHandler{
		advisoryUseCase: advisoryUseCase,
	}
}

func (h *AdvisoryHandler) Ask(c echo.Context) error {
	var req struct {
		Question string `json:"question" validate:"required,min=5"`
		Crop     string `json:"crop"`
		Region   string `json:"region"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.advisoryUseCase.Ask(c.Request().Context(), usecase.AdvisoryInput{
		Question: req.Question,
		Crop:     req.Crop,
		Region:   req.Region,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
