package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// EmailConfig holds the transactional email provider settings.
type EmailConfig struct {
	APIKey       string
	BaseURL      string
	From         string
	SupportEmail string
}

// Config aggregates configuration for the HTTP API.
type Config struct {
	DatabaseURL       string
	JWTSecret         string
	Port              string
	TokenTTL          time.Duration
	RateLimitBookings RateLimitConfig
	Email             EmailConfig
	AutoMigrate       bool
}

// IngestConfig aggregates configuration for the ingestion pipeline.
type IngestConfig struct {
	DatabaseURL    string
	PlacesAPIKey   string
	PlacesEndpoint string
	QueryDelay     time.Duration
	CityDelay      time.Duration
	RetryAttempts  int
	ArchiveBucket  string
	ArchivePrefix  string
}

// Load reads API configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		Port:        getEnv("PORT", "8080"),
		TokenTTL:    parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		Email: EmailConfig{
			APIKey:       os.Getenv("RESEND_API_KEY"),
			BaseURL:      getEnv("EMAIL_API_BASE_URL", "https://api.resend.com"),
			From:         getEnv("EMAIL_FROM", "NotaryFinderNow <notifications@notaryfindernow.com>"),
			SupportEmail: getEnv("SUPPORT_EMAIL", "support@notaryfindernow.com"),
		},
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_BOOKINGS", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BOOKINGS value: %w", err)
	}
	cfg.RateLimitBookings = rl

	if raw := os.Getenv("AUTO_MIGRATE"); raw != "" {
		migrate, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTO_MIGRATE value: %q", raw)
		}
		cfg.AutoMigrate = migrate
	}

	return cfg, nil
}

// LoadIngest reads the ingestion pipeline configuration.
func LoadIngest() (*IngestConfig, error) {
	cfg := &IngestConfig{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		PlacesAPIKey:   firstEnv("GOOGLE_PLACES_API_KEY", "GOOGLE_MAPS_API_KEY"),
		PlacesEndpoint: os.Getenv("PLACES_ENDPOINT"),
		QueryDelay:     parseDuration(getEnv("INGEST_QUERY_DELAY", "2s"), 2*time.Second),
		CityDelay:      parseDuration(getEnv("INGEST_CITY_DELAY", "3s"), 3*time.Second),
		ArchiveBucket:  os.Getenv("ARCHIVE_BUCKET"),
		ArchivePrefix:  getEnv("ARCHIVE_PREFIX", "places"),
	}

	attempts, err := strconv.Atoi(getEnv("INGEST_RETRY_ATTEMPTS", "0"))
	if err != nil || attempts < 0 {
		return nil, fmt.Errorf("invalid INGEST_RETRY_ATTEMPTS value: %q", os.Getenv("INGEST_RETRY_ATTEMPTS"))
	}
	cfg.RetryAttempts = attempts

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	return ""
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
