package router

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/adapter/api/handler"
	"agricsmart/internal/adapter/api/middleware"
)

func SetupMarketRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	productHandler := handler.GetProductHandler()
	orderHandler := handler.GetOrderHandler()

	// Public browsing.
	e.GET("/api/v1/market/products", productHandler.Search)
	e.GET("/api/v1/market/products/nearby", productHandler.Nearby)
	e.GET("/api/v1/market/products/:id", productHandler.Get)

	market := e.Group("/api/v1/market")
	market.Use(authMiddleware.Authenticate)

	market.POST("/products", productHandler.Create)
	market.PATCH("/products/:id", productHandler.Update)
	market.DELETE("/products/:id", productHandler.Delete)
	market.GET("/my-products", productHandler.ListMine)

	market.POST("/orders", orderHandler.Create)
	market.GET("/orders", orderHandler.ListMine)
	market.GET("/sales", orderHandler.ListSales)
	market.GET("/orders/:id", orderHandler.Get)
	market.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
}
