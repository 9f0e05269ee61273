// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"ytcomments/retry"
)

// Config holds all application configuration for comment fetching operations.
type Config struct {
	// APIKey is the YouTube Data API v3 key.
	APIKey string `json:"api_key"`

	// MaxComments limits the total number of records emitted per run.
	MaxComments int `json:"max_comments"`
	// PageSize is the number of top-level threads requested per page (1-100).
	PageSize int `json:"page_size"`
	// ReplyPageSize is the number of replies requested per reply page (1-100).
	ReplyPageSize int `json:"reply_page_size"`

	// RequestsPerSecond throttles outgoing API calls (0 = unlimited).
	RequestsPerSecond float64 `json:"requests_per_second"`
	// RequestTimeout is the maximum time to wait for a single API call.
	RequestTimeout time.Duration `json:"request_timeout"`

	// MaxRetries is the maximum number of retries for failed operations
	MaxRetries int `json:"max_retries"`
	// InitialBackoff is the initial backoff duration for retries
	InitialBackoff time.Duration `json:"initial_backoff"`
	// MaxBackoff is the maximum backoff duration for retries
	MaxBackoff time.Duration `json:"max_backoff"`
	// BackoffMultiplier is the multiplier for exponential backoff (must be > 1)
	BackoffMultiplier float64 `json:"backoff_multiplier"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxComments:       100,
		PageSize:          100,
		ReplyPageSize:     100,
		RequestsPerSecond: 5.0,
		RequestTimeout:    30 * time.Second,
		MaxRetries:        5,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config file
	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.loadFromEnv()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytcomments.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{"ytcomments.json"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "ytcomments", "ytcomments.json"))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTCOMMENTS_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTCOMMENTS_MAX_COMMENTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxComments = n
		}
	}
	if v := os.Getenv("YTCOMMENTS_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PageSize = n
		}
	}
	if v := os.Getenv("YTCOMMENTS_REPLY_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.ReplyPageSize = n
		}
	}
	if v := os.Getenv("YTCOMMENTS_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("YTCOMMENTS_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("YTCOMMENTS_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("YTCOMMENTS_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.InitialBackoff = d
		}
	}
	if v := os.Getenv("YTCOMMENTS_MAX_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.MaxBackoff = d
		}
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.MaxComments < 1 {
		return fmt.Errorf("max_comments must be >= 1")
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page_size must be in 1..100")
	}
	if c.ReplyPageSize < 1 || c.ReplyPageSize > 100 {
		return fmt.Errorf("reply_page_size must be in 1..100")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be non-negative")
	}
	if c.InitialBackoff <= 0 {
		return fmt.Errorf("initial_backoff must be positive")
	}
	if c.MaxBackoff <= 0 {
		return fmt.Errorf("max_backoff must be positive")
	}
	if c.MaxBackoff < c.InitialBackoff {
		return fmt.Errorf("max_backoff must be >= initial_backoff")
	}
	if c.BackoffMultiplier <= 1 {
		return fmt.Errorf("backoff_multiplier must be > 1")
	}
	return nil
}

// RetryConfig converts the retry-related fields into a retry.Config.
func (c *Config) RetryConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = c.MaxRetries
	cfg.InitialBackoff = c.InitialBackoff
	cfg.MaxBackoff = c.MaxBackoff
	cfg.Multiplier = c.BackoffMultiplier
	return cfg
}
