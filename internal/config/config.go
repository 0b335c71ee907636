// Package config loads agent configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all agent configuration.
type Config struct {
	// Complaint API server
	APIBaseURL string
	AuthToken  string

	// Local state
	DataDir string

	// Local REST/WebSocket surface
	ListenAddr string

	// Timing
	SubmitTimeout   time.Duration // live submission attempt
	SyncItemTimeout time.Duration // per-item attempt during a sync cycle
	ProbeInterval   time.Duration // connectivity probe cadence
	ProbeTimeout    time.Duration // single probe request

	// Logging
	LogLevel string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults.
func Load() (*Config, error) {
	// Missing .env is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL: getEnvOrDefault("COMPLAINT_API_BASE_URL", "http://localhost:8000/api"),
		AuthToken:  os.Getenv("COMPLAINT_API_TOKEN"),

		DataDir: getEnvOrDefault("DATA_DIR", "./data"),

		ListenAddr: getEnvOrDefault("AGENT_LISTEN_ADDR", "localhost:8090"),

		SubmitTimeout:   getEnvDuration("SUBMIT_TIMEOUT", 15*time.Second),
		SyncItemTimeout: getEnvDuration("SYNC_ITEM_TIMEOUT", 15*time.Second),
		ProbeInterval:   getEnvDuration("PROBE_INTERVAL", 30*time.Second),
		ProbeTimeout:    getEnvDuration("PROBE_TIMEOUT", 5*time.Second),

		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present and sane.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("COMPLAINT_API_BASE_URL is required")
	}
	if c.SubmitTimeout <= 0 {
		return fmt.Errorf("SUBMIT_TIMEOUT must be positive, got %v", c.SubmitTimeout)
	}
	if c.SyncItemTimeout <= 0 {
		return fmt.Errorf("SYNC_ITEM_TIMEOUT must be positive, got %v", c.SyncItemTimeout)
	}
	if c.ProbeInterval <= 0 {
		return fmt.Errorf("PROBE_INTERVAL must be positive, got %v", c.ProbeInterval)
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvDuration parses a duration environment variable with a default.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
