package middleware

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// Incoming ids end up in log lines, so only short token-like values are reused.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

type requestIDKey struct{}

// RequestID tags each request with an identifier, reusing a well formed
// X-Request-ID from the caller. The id is stored on the echo context, the
// request context.Context and the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(requestIDHeader)
			if !validRequestID.MatchString(rid) {
				rid = uuid.NewString()
			}

			c.Set(ContextKeyRequestID, rid)
			c.SetRequest(c.Request().WithContext(WithRequestID(c.Request().Context(), rid)))
			c.Response().Header().Set(requestIDHeader, rid)

			return next(c)
		}
	}
}

// WithRequestID returns a copy of ctx carrying rid.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, rid)
}

// RequestIDFrom reads the identifier stored by RequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}

// RequestIDFromContext extracts the request identifier if available.
func RequestIDFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyRequestID).(string); ok {
		return val
	}
	return RequestIDFrom(c.Request().Context())
}
