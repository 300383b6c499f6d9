package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/7lsnyc/notaryfindernow2/internal/config"
)

// clientTTL bounds how long an idle client's bucket is remembered.
const clientTTL = 10 * time.Minute

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	clients map[string]*clientBucket
	now     func() time.Time
}

func newClientLimiter(cfg config.RateLimitConfig) *clientLimiter {
	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}
	return &clientLimiter{
		every:   rate.Every(perRequest),
		burst:   cfg.Requests,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
	}
}

func (l *clientLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, b := range l.clients {
		if now.Sub(b.lastSeen) > clientTTL {
			delete(l.clients, k)
		}
	}

	b, ok := l.clients[key]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.every, l.burst)}
		l.clients[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// SubmissionRateLimiter throttles public write endpoints per client IP.
// Only POST requests whose route matches one of paths are counted.
func SubmissionRateLimiter(cfg config.RateLimitConfig, paths ...string) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	limited := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		limited[p] = struct{}{}
	}
	limiter := newClientLimiter(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodPost {
				return next(c)
			}
			if _, ok := limited[c.Path()]; !ok {
				return next(c)
			}

			if !limiter.allow(c.RealIP()) {
				return reject(c, http.StatusTooManyRequests, "too many requests, try again later")
			}

			return next(c)
		}
	}
}
