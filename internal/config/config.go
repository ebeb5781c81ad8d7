package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment      string
	HTTPPort         string
	DatabasePath     string
	EmployeeID       string
	JWTSecret        string
	GenerateInterval time.Duration
	PushURLs         []string
}

// Load reads env vars and falls back to defaults so the server can boot with
// zero configuration.
func Load() (Config, error) {
	cfg := Config{
		Environment:  getEnv("STOCKROOM_ENV", "development"),
		HTTPPort:     getEnv("STOCKROOM_HTTP_PORT", "8080"),
		DatabasePath: getEnv("STOCKROOM_DB_PATH", filepath.Join("data", "stockroom.db")),
		EmployeeID:   getEnv("STOCKROOM_EMPLOYEE_ID", "back-office"),
		JWTSecret:    os.Getenv("STOCKROOM_JWT_SECRET"),
	}

	interval := getEnv("STOCKROOM_GENERATE_INTERVAL", "1m")
	d, err := time.ParseDuration(interval)
	if err != nil || d <= 0 {
		return Config{}, fmt.Errorf("invalid STOCKROOM_GENERATE_INTERVAL %q", interval)
	}
	cfg.GenerateInterval = d

	if raw := os.Getenv("STOCKROOM_PUSH_URLS"); raw != "" {
		for _, u := range strings.Split(raw, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.PushURLs = append(cfg.PushURLs, u)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
