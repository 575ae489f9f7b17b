package router

import (
	"github.com/labstack/echo/v4"

	"agricsmart/internal/adapter/api/handler"
	"agricsmart/internal/adapter/api/middleware"
)

func SetupEducationRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	courseHandler := handler.GetCourseHandler()

	// Public catalogue and certificate verification.
	e.GET("/api/v1/education/courses", courseHandler.Search)
	e.GET("/api/v1/education/courses/:id", courseHandler.Get)
	e.GET("/api/v1/education/categories", courseHandler.ListCategories)
	e.GET("/api/v1/education/certificates/:code", courseHandler.VerifyCertificate)

	education := e.Group("/api/v1/education")
	education.Use(authMiddleware.Authenticate)

	education.POST("/courses", courseHandler.Create, roleMiddleware.EducatorOnly)
	education.PATCH("/courses/:id", courseHandler.Update, roleMiddleware.EducatorOnly)
	education.POST("/categories", courseHandler.CreateCategory, roleMiddleware.AdminOnly)

	education.POST("/courses/:id/enroll", courseHandler.Enroll)
	education.GET("/courses/:id/progress", courseHandler.GetProgress)
	education.POST("/courses/:id/lessons/:lessonId/complete", courseHandler.CompleteLesson)
	education.GET("/courses/:id/certificate", courseHandler.GetCertificate)
}
