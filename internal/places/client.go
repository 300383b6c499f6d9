// Package places wraps the Places API (New) text search and place detail
// endpoints used by the ingestion pipeline.
package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	placesapi "google.golang.org/api/places/v1"
)

const fieldMaskHeader = "X-Goog-FieldMask"

// Options configures a Client. HTTPClient, when set, replaces the API key
// credentials.
type Options struct {
	APIKey     string
	Endpoint   string
	HTTPClient *http.Client
	Retry      RetryPolicy
	QueryDelay time.Duration
}

// Client issues search and detail requests against the Places API.
type Client struct {
	svc        *placesapi.Service
	retry      RetryPolicy
	queryDelay time.Duration
}

// NewClient builds a Places client from explicit options.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var clientOpts []option.ClientOption
	switch {
	case opts.HTTPClient != nil:
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	case opts.APIKey != "":
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	default:
		return nil, fmt.Errorf("places API key must not be empty")
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := placesapi.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create places service: %w", err)
	}

	retry := opts.Retry
	if retry == nil {
		retry = NoRetry{}
	}

	return &Client{svc: svc, retry: retry, queryDelay: opts.QueryDelay}, nil
}

// describeError renders API failures with the response status and body.
func describeError(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Sprintf("status=%d body=%s", gerr.Code, gerr.Body)
	}
	return err.Error()
}

// Wait blocks for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
