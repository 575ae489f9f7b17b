package router

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/adapter/api/handler"
	"agricsmart/internal/adapter/api/middleware"
)

func SetupAdvisoryRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	advisoryHandler := handler.GetAdvisoryHandler()

	ai := e.Group("/api/v1/ai")
	ai.Use(authMiddleware.Authenticate)

	ai.POST("/ask", advisoryHandler.Ask)
}
