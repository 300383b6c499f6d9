package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes one key=value line per HTTP request.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			rid := RequestIDFromContext(c)
			if err != nil {
				log.Printf("request_id=%s method=%s path=%s ip=%s status=%d latency=%s err=%q", rid, req.Method, req.URL.Path, c.RealIP(), c.Response().Status, latency, err.Error())
			} else {
				log.Printf("request_id=%s method=%s path=%s ip=%s status=%d latency=%s", rid, req.Method, req.URL.Path, c.RealIP(), c.Response().Status, latency)
			}

			return err
		}
	}
}
