package router

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/adapter/api/handler"
	"agricsmart/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	adminHandler := handler.GetAdminHandler()
	paymentHandler := handler.GetPaymentHandler()

	admin := e.Group("/api/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.AdminOnly)

	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/status", adminHandler.SetUserStatus)
	admin.PATCH("/users/:id/role", adminHandler.SetUserRole)

	admin.PATCH("/payments/:id/status", paymentHandler.UpdateStatus)
}
