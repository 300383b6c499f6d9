package middleware

import "github.com/labstack/echo/v4"

// Context keys used to store request and admin metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)

// reject writes the API error envelope without running the next handler.
func reject(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		"status":  "error",
		"message": message,
	})
}
