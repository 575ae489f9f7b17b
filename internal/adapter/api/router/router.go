package router

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/adapter/api/middleware"
)

// Setup mounts every route group under /api/v1.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupMarketRouter(e, authMiddleware)
	SetupPaymentRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupEducationRouter(e, authMiddleware, roleMiddleware)
	SetupAdvisoryRouter(e, authMiddleware)
	SetupAdminRouter(e, authMiddleware, roleMiddleware)
	SetupHealthRouter(e)
}
