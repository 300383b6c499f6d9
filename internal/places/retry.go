package places

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"google.golang.org/api/googleapi"
)

// RetryPolicy decides how an API call is repeated after a failure.
type RetryPolicy interface {
	Do(ctx context.Context, op string, fn func(ctx context.Context) error) error
}

// NoRetry runs each call exactly once.
type NoRetry struct{}

func (NoRetry) Do(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Backoff retries retryable failures up to Attempts extra times, doubling the
// delay from Initial and capping it at Max.
type Backoff struct {
	Attempts  int
	Initial   time.Duration
	Max       time.Duration
	Retryable func(error) bool
}

func (b Backoff) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	retryable := b.Retryable
	if retryable == nil {
		retryable = Retryable
	}

	delay := b.Initial
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= b.Attempts || !retryable(err) {
			return err
		}
		log.Printf("retrying places call op=%s attempt=%d delay=%s error=%q", op, attempt+1, delay, describeError(err))
		if werr := Wait(ctx, delay); werr != nil {
			return werr
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
}

// Retryable reports whether err is a rate limit, a server side API failure or
// a transport failure. Cancellation is never retried.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}

var (
	_ RetryPolicy = NoRetry{}
	_ RetryPolicy = Backoff{}
)
