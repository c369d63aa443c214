package config

import (
	"fmt"
	"time"

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

// Config holds the configuration for the storefront service.
// Environment variables are parsed from the STOREFRONT_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage. DBDriver "auto" derives from the DSNs below: postgres when a
	// DSN is set, sqlite otherwise.
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/storefront.db"`

	// Search Configuration
	SearchCacheTTL     time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"5m"`
	SuggestionLimit    int           `envconfig:"SUGGESTION_LIMIT" default:"5"`
	FuzzyScoreThresh   float64       `envconfig:"FUZZY_SCORE_THRESHOLD" default:"0.3"`
	FuzzyMinMatchChars int           `envconfig:"FUZZY_MIN_MATCH_CHARS" default:"2"`

	// Assistant / Gemini Configuration
	GeminiAPIKey     string        `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel      string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	GeminiTimeout    time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`
	ContextCacheTTL  time.Duration `envconfig:"CONTEXT_CACHE_TTL" default:"5m"`
	CurrencyLabel    string        `envconfig:"CURRENCY_LABEL" default:"Rp"`
	HistoryWindow    int           `envconfig:"HISTORY_WINDOW" default:"6"`
	AssistantEnabled bool          `envconfig:"ASSISTANT_ENABLED" default:"true"`

	// Image host (hand-off target for admin product image uploads)
	ImageHostURL string `envconfig:"IMAGE_HOST_URL" default:""`
	ImageHostKey string `envconfig:"IMAGE_HOST_KEY" default:""`
}

// ResolveDefaults derives DBDriver when set to "auto" or empty and validates
// the resulting driver choice.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}

	allowedDB := map[string]bool{"postgres": true, "sqlite": true}
	if !allowedDB[c.DBDriver] {
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.SuggestionLimit <= 0 {
		c.SuggestionLimit = 5
	}
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = 6
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: STOREFRONT_HTTP_PORT, STOREFRONT_GEMINI_API_KEY.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("STOREFRONT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("port", cfg.HTTPPort).
		Dur("search_cache_ttl", cfg.SearchCacheTTL).
		Dur("context_cache_ttl", cfg.ContextCacheTTL).
		Str("gemini_model", cfg.GeminiModel).
		Str("gemini_key_present", func() string {
			if cfg.GeminiAPIKey != "" {
				return "true"
			}
			return "false"
		}()).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	cfg := &Config{
		Environment: EnvTesting,
		HTTPPort:    8080,

		DBDriver:   "sqlite",
		SQLitePath: ":memory:",

		SearchCacheTTL:     5 * time.Minute,
		SuggestionLimit:    5,
		FuzzyScoreThresh:   0.3,
		FuzzyMinMatchChars: 2,

		GeminiModel:      "gemini-2.0-flash",
		GeminiTimeout:    30 * time.Second,
		ContextCacheTTL:  5 * time.Minute,
		CurrencyLabel:    "Rp",
		HistoryWindow:    6,
		AssistantEnabled: true,
	}
	return cfg
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
