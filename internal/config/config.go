package config

import (
	"os"
	"strconv"

	"fairdetect/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Audit    AuditConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	UIPort  string
	APIPort string
	GinMode string
}

// DatabaseConfig holds database connection settings. URL may be empty, in
// which case reports are kept in memory only.
type DatabaseConfig struct {
	URL string
}

// AuditConfig holds audit defaults
type AuditConfig struct {
	Seed        int64
	ReportLimit int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			UIPort:  getEnv("FAIRDETECT_UI_PORT", "8080"),
			APIPort: getEnv("FAIRDETECT_API_PORT", "8081"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("FAIRDETECT_DATABASE_URL"),
		},
		Audit: AuditConfig{
			Seed:        42,
			ReportLimit: 50,
		},
	}

	if v := os.Getenv("FAIRDETECT_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("FAIRDETECT_SEED must be an integer")
		}
		cfg.Audit.Seed = seed
	}
	if v := os.Getenv("FAIRDETECT_REPORT_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, errors.ConfigInvalid("FAIRDETECT_REPORT_LIMIT must be a positive integer")
		}
		cfg.Audit.ReportLimit = limit
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
