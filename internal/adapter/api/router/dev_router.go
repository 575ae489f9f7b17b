package router

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/adapter/api/handler"
)

// SetupDevRouter mounts development-only endpoints. Nothing is registered in
// production.
func SetupDevRouter(e *echo.Echo, environment string) {
	if environment == "production" {
		return
	}

	devTokenHandler := handler.GetDevTokenHandler()

	e.POST("/dev/token", devTokenHandler.GenerateToken)
}
