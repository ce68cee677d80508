// Package config holds the single authoritative service configuration,
// assembled from the embedded YAML file and finalized by environment
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tinywideclouds/go-microservice-base/pkg/middleware"
)

type VendorConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// Config defines the *single*, authoritative configuration.
type Config struct {
	ListenAddr string

	// LaunchURL is the deep link the host application was started with,
	// when the runtime passes one through the environment.
	LaunchURL string

	// FeedSnapshotTTL bounds how long a synced feed stays readable before
	// the next refresh.
	FeedSnapshotTTL time.Duration

	Vendor VendorConfig
	Redis  RedisConfig

	CorsConfig middleware.CorsConfig
}

// UpdateConfigWithEnvOverrides applies environment variables and final validation.
func UpdateConfigWithEnvOverrides(cfg *Config, logger *slog.Logger) (*Config, error) {
	logger.Debug("Applying environment variable overrides...")

	if val := os.Getenv("PORT"); val != "" {
		logger.Debug("Overriding config value", "key", "PORT", "source", "env")
		cfg.ListenAddr = ":" + val
	}
	if val := os.Getenv("LAUNCH_URL"); val != "" {
		logger.Debug("Overriding config value", "key", "LAUNCH_URL", "source", "env")
		cfg.LaunchURL = val
	}

	// Vendor overrides
	if val := os.Getenv("VENDOR_BASE_URL"); val != "" {
		logger.Debug("Overriding config value", "key", "VENDOR_BASE_URL", "source", "env")
		cfg.Vendor.BaseURL = val
	}
	if val := os.Getenv("VENDOR_API_KEY"); val != "" {
		logger.Debug("Overriding config value", "key", "VENDOR_API_KEY", "source", "env")
		cfg.Vendor.APIKey = val
	}
	if val := os.Getenv("VENDOR_TIMEOUT_SECONDS"); val != "" {
		if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
			logger.Debug("Overriding config value", "key", "VENDOR_TIMEOUT_SECONDS", "source", "env")
			cfg.Vendor.Timeout = time.Duration(secs) * time.Second
		}
	}

	// Redis overrides
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		cfg.Redis.Addr = val
		cfg.Redis.Enabled = true
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		cfg.Redis.Password = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		if db, err := strconv.Atoi(val); err == nil {
			cfg.Redis.DB = db
		}
	}
	if val := os.Getenv("REDIS_ENABLED"); val != "" {
		enabled, _ := strconv.ParseBool(val)
		cfg.Redis.Enabled = enabled
	}

	// CORS overrides
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		logger.Debug("Overriding config value", "key", "CORS_ALLOWED_ORIGINS", "source", "env")
		rawOrigins := strings.Split(corsOrigins, ",")
		var cleanOrigins []string
		for _, o := range rawOrigins {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				cleanOrigins = append(cleanOrigins, trimmed)
			}
		}
		cfg.CorsConfig.AllowedOrigins = cleanOrigins
	}

	// Final validation
	if cfg.Vendor.BaseURL == "" {
		return nil, fmt.Errorf("vendor base_url is required (set via YAML or VENDOR_BASE_URL env var)")
	}
	if cfg.Vendor.APIKey == "" {
		return nil, fmt.Errorf("vendor api_key is required (set via YAML or VENDOR_API_KEY env var)")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.Vendor.Timeout <= 0 {
		cfg.Vendor.Timeout = 10 * time.Second
	}
	if cfg.FeedSnapshotTTL <= 0 {
		cfg.FeedSnapshotTTL = 24 * time.Hour
	}

	logger.Debug("Configuration finalized and validated successfully")
	return cfg, nil
}
