package mailer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/7lsnyc/notaryfindernow2/internal/config"
)

// ErrSendFailed wraps every provider-side delivery failure.
var ErrSendFailed = errors.New("email delivery failed")

// Message is a single outbound HTML email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers messages through a transactional email provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendClient delivers messages through the Resend API.
type ResendClient struct {
	client *resend.Client
}

// NewResendClient builds a client for the given API base URL.
func NewResendClient(httpClient *http.Client, baseURL, apiKey string) (*ResendClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("email base url must not be empty")
	}
	if apiKey == "" {
		return nil, errors.New("email api key must not be empty")
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid email base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	client := resend.NewCustomClient(httpClient, apiKey)
	client.BaseURL = base
	return &ResendClient{client: client}, nil
}

// NewSender returns a Resend client, or a LogSender when no API key is configured.
func NewSender(httpClient *http.Client, cfg config.EmailConfig) (Sender, error) {
	if cfg.APIKey == "" {
		log.Printf("event=mailer_disabled reason=%q", "RESEND_API_KEY not set")
		return LogSender{}, nil
	}
	return NewResendClient(httpClient, cfg.BaseURL, cfg.APIKey)
}

// Send delivers the message and returns the provider's message id.
func (c *ResendClient) Send(ctx context.Context, msg Message) (string, error) {
	if len(msg.To) == 0 {
		return "", errors.New("message has no recipients")
	}

	sent, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return sent.Id, nil
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

// Send logs the envelope of msg.
func (LogSender) Send(_ context.Context, msg Message) (string, error) {
	log.Printf("event=email_logged to=%s subject=%q", strings.Join(msg.To, ","), msg.Subject)
	return "", nil
}

var (
	_ Sender = (*ResendClient)(nil)
	_ Sender = LogSender{}
)
