package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment       string
	ServerPort        int
	DataDir           string
	SettingsFile      string
	LogLevel          string
	JWTSecret         string
	TokenTTL          time.Duration
	RateLimitRequests int
	RateLimitWindow   time.Duration
	DashboardCacheTTL time.Duration
}

// Load reads configuration from the environment, after loading an optional
// .env file from the working directory.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env always wins
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	tokenTTLMin, err := strconv.Atoi(getEnv("TOKEN_TTL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES: %w", err)
	}

	rateLimitReqs, err := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}

	rateLimitWindowSec, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_SECONDS: %w", err)
	}

	dashboardTTLSec, err := strconv.Atoi(getEnv("DASHBOARD_CACHE_TTL_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid DASHBOARD_CACHE_TTL_SECONDS: %w", err)
	}

	dataDir := getEnv("DATA_DIR", defaultDataDir())

	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		ServerPort:        port,
		DataDir:           dataDir,
		SettingsFile:      getEnv("SETTINGS_FILE", filepath.Join(dataDir, "email_settings.properties")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		TokenTTL:          time.Duration(tokenTTLMin) * time.Minute,
		RateLimitRequests: rateLimitReqs,
		RateLimitWindow:   time.Duration(rateLimitWindowSec) * time.Second,
		DashboardCacheTTL: time.Duration(dashboardTTLSec) * time.Second,
	}, nil
}

// defaultDataDir places the Database directory beside the installed binary,
// matching where existing installations keep their files. Falls back to the
// working directory when the executable path is unavailable.
func defaultDataDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "Database"
	}
	return filepath.Join(filepath.Dir(exe), "Database")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
