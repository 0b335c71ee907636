package config

import (
	"testing"
	"time"
)

// TestLoad_defaults verifies defaults apply with an empty environment.
func TestLoad_defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIBaseURL == "" {
		t.Error("expected a default API base URL")
	}
	if cfg.ListenAddr != "localhost:8090" {
		t.Errorf("ListenAddr = %q, want localhost:8090", cfg.ListenAddr)
	}
	if cfg.SyncItemTimeout != 15*time.Second {
		t.Errorf("SyncItemTimeout = %v, want 15s", cfg.SyncItemTimeout)
	}
}

// TestLoad_envOverrides verifies environment variables take precedence.
func TestLoad_envOverrides(t *testing.T) {
	t.Setenv("COMPLAINT_API_BASE_URL", "https://complaints.example.com/api")
	t.Setenv("SYNC_ITEM_TIMEOUT", "30s")
	t.Setenv("PROBE_INTERVAL", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.APIBaseURL != "https://complaints.example.com/api" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.SyncItemTimeout != 30*time.Second {
		t.Errorf("SyncItemTimeout = %v, want 30s", cfg.SyncItemTimeout)
	}
	if cfg.ProbeInterval != 10*time.Second {
		t.Errorf("ProbeInterval = %v, want 10s", cfg.ProbeInterval)
	}
}

// TestLoad_invalidDurationFallsBack verifies malformed durations fall back
// to defaults instead of failing startup.
func TestLoad_invalidDurationFallsBack(t *testing.T) {
	t.Setenv("SUBMIT_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.SubmitTimeout != 15*time.Second {
		t.Errorf("SubmitTimeout = %v, want default 15s", cfg.SubmitTimeout)
	}
}

// TestValidate verifies required fields are enforced.
func TestValidate(t *testing.T) {
	cfg := &Config{
		APIBaseURL:      "",
		SubmitTimeout:   time.Second,
		SyncItemTimeout: time.Second,
		ProbeInterval:   time.Second,
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty APIBaseURL")
	}

	cfg.APIBaseURL = "http://localhost:8000/api"
	cfg.SyncItemTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero SyncItemTimeout")
	}
}
