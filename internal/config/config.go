package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the assistant backend.
// Environment variables are parsed from the ALIGNAI_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"4000"`

	// Google OAuth / Calendar
	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID" default:""`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET" default:""`
	GoogleRedirectURI  string `envconfig:"GOOGLE_REDIRECT_URI" default:""`

	// Model provider
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" default:""`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4.1-mini"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com"`

	// Planner behavior
	CalendarTimezone string `envconfig:"CALENDAR_TIMEZONE" default:"Asia/Seoul"`
	WeekLengthDays   int    `envconfig:"WEEK_LENGTH_DAYS" default:"5"`

	// Session store: "memory" or "sqlite"
	SessionStore  string `envconfig:"SESSION_STORE" default:"memory"`
	SessionDBPath string `envconfig:"SESSION_DB_PATH" default:""`
}

// ResolveDefaults validates enum-like settings and derives the session DB
// path when the sqlite store is selected without one.
func (c *Config) ResolveDefaults() error {
	if c.WeekLengthDays != 5 && c.WeekLengthDays != 7 {
		return fmt.Errorf("unsupported WEEK_LENGTH_DAYS: %d (want 5 or 7)", c.WeekLengthDays)
	}

	switch c.SessionStore {
	case "memory":
	case "sqlite":
		if c.SessionDBPath == "" {
			c.SessionDBPath = "data/sessions.db"
		}
	default:
		return fmt.Errorf("unsupported SESSION_STORE: %s", c.SessionStore)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: ALIGNAI_HTTP_PORT, ALIGNAI_CALENDAR_TIMEZONE.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ALIGNAI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("model", cfg.OpenAIModel).
		Str("timezone", cfg.CalendarTimezone).
		Int("week_length_days", cfg.WeekLengthDays).
		Str("session_store", cfg.SessionStore).
		Bool("google_config_present", cfg.HasGoogleConfig()).
		Bool("openai_key_present", cfg.HasOpenAIKey()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:      EnvTesting,
		HTTPPort:         4000,
		OpenAIModel:      "gpt-4.1-mini",
		OpenAIBaseURL:    "https://api.openai.com",
		CalendarTimezone: "UTC",
		WeekLengthDays:   5,
		SessionStore:     "memory",
	}
}

// HasGoogleConfig reports whether all Google OAuth settings are present.
func (c *Config) HasGoogleConfig() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleRedirectURI != ""
}

// HasOpenAIKey reports whether a model provider key is configured.
func (c *Config) HasOpenAIKey() bool {
	return c.OpenAIAPIKey != ""
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
