package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces that the authenticated request carries the expected role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value, _ := c.Get(ContextKeyUserRole).(string)
			switch {
			case value == "":
				return reject(c, http.StatusForbidden, "missing role")
			case value != role:
				return reject(c, http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
