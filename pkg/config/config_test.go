package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.ServerPort)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected default environment development, got %s", cfg.Environment)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("expected default token TTL 1h, got %s", cfg.TokenTTL)
	}
	if cfg.RateLimitRequests != 100 {
		t.Fatalf("expected default rate limit 100, got %d", cfg.RateLimitRequests)
	}
	if cfg.DashboardCacheTTL != 30*time.Second {
		t.Fatalf("expected default dashboard TTL 30s, got %s", cfg.DashboardCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATA_DIR", "/tmp/rentledger-test")
	t.Setenv("TOKEN_TTL_MINUTES", "15")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.ServerPort)
	}
	if cfg.DataDir != "/tmp/rentledger-test" {
		t.Fatalf("expected overridden data dir, got %s", cfg.DataDir)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Fatalf("expected token TTL 15m, got %s", cfg.TokenTTL)
	}
	if cfg.SettingsFile == "" {
		t.Fatalf("expected settings file derived from data dir")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-port")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid port")
	}
}
