package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/7lsnyc/notaryfindernow2/internal/auth"
)

// JWT validates admin bearer tokens and stores the claims in the request context.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return reject(c, http.StatusUnauthorized, "missing authorization header")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				return reject(c, http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := manager.ParseToken(strings.TrimSpace(token))
			if err != nil {
				return reject(c, http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyUserEmail, claims.Email)
			c.Set(ContextKeyUserRole, claims.Role)

			return next(c)
		}
	}
}
