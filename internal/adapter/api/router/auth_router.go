package router

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/adapter/api/handler"
	"agricsmart/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	e.POST("/api/v1/auth/register", authHandler.Register)
	e.POST("/api/v1/auth/login", authHandler.Login)

	protected := e.Group("/api/v1/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.GET("/me", authHandler.Me)
	protected.POST("/change-password", authHandler.ChangePassword)
}
