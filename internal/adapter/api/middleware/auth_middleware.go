package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"agricsmart/internal/infrastructure/firebase"
)

type AuthMiddleware struct {
	authClient     *auth.Client
	devTokenSecret string
}

func NewAuthMiddleware(authClient *auth.Client, devTokenSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		authClient:     authClient,
		devTokenSecret: devTokenSecret,
	}
}

// Authenticate verifies the bearer token and stores the caller's uid in the
// echo context. Firebase ID tokens are tried first; locally signed dev
// tokens are accepted as a fallback when a secret is configured.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		idToken := parts[1]

		token, err := m.authClient.VerifyIDToken(c.Request().Context(), idToken)
		if err == nil {
			c.Set("uid", token.UID)
			return next(c)
		}

		if m.devTokenSecret != "" {
			if uid, devErr := firebase.VerifyDevToken(idToken, m.devTokenSecret); devErr == nil {
				c.Set("uid", uid)
				return next(c)
			}
		}

		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}
}
