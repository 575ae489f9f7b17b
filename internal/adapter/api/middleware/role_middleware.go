package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agricsmart/internal/domain/entity"
	"agricsmart/internal/domain/repository"
)

type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

// AdminOnly allows only users with the Admin role past.
func (m *RoleMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, entity.RoleAdmin)
}

// EducatorOnly allows educators and admins.
func (m *RoleMiddleware) EducatorOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, entity.RoleEducator, entity.RoleAdmin)
}

func (m *RoleMiddleware) require(next echo.HandlerFunc, roles ...string) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify privileges")
		}

		for _, role := range roles {
			if user.Role == role {
				return next(c)
			}
		}

		return echo.NewHTTPError(http.StatusForbidden, "Insufficient privileges")
	}
}
