package router

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/adapter/api/handler"
	"agricsmart/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	// Provider callback: unauthenticated, correlated by reference.
	e.POST("/api/v1/payments/webhook", paymentHandler.Webhook)

	payments := e.Group("/api/v1/payments")
	payments.Use(authMiddleware.Authenticate)

	payments.POST("", paymentHandler.Create)
	payments.POST("/momo", paymentHandler.ProcessMomo)
	payments.POST("/card", paymentHandler.ProcessCard)
	payments.GET("", paymentHandler.List)
	payments.GET("/:id", paymentHandler.Get)
}
