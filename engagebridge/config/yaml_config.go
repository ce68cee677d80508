package config

import (
	"log/slog"
	"time"

	"github.com/tinywideclouds/go-microservice-base/pkg/middleware"
)

type YamlCorsConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	Role           string   `yaml:"role"`
}

type YamlVendorConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type YamlRedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Enabled  bool   `yaml:"enabled"`
}

// YamlConfig is the structure that mirrors the raw config.yaml file.
type YamlConfig struct {
	ListenAddr           string           `yaml:"listen_addr"`
	LaunchURL            string           `yaml:"launch_url"`
	FeedSnapshotTTLHours int              `yaml:"feed_snapshot_ttl_hours"`
	VendorConfig         YamlVendorConfig `yaml:"vendor"`
	RedisConfig          YamlRedisConfig  `yaml:"redis"`
	CorsConfig           YamlCorsConfig   `yaml:"cors"`
}

// NewConfigFromYaml converts the YamlConfig into a clean, base Config struct.
func NewConfigFromYaml(baseCfg *YamlConfig, logger *slog.Logger) (*Config, error) {
	logger.Debug("Mapping YAML config to base config struct")

	cfg := &Config{
		ListenAddr:      baseCfg.ListenAddr,
		LaunchURL:       baseCfg.LaunchURL,
		FeedSnapshotTTL: time.Duration(baseCfg.FeedSnapshotTTLHours) * time.Hour,
		Vendor: VendorConfig{
			BaseURL: baseCfg.VendorConfig.BaseURL,
			APIKey:  baseCfg.VendorConfig.APIKey,
			Timeout: time.Duration(baseCfg.VendorConfig.TimeoutSeconds) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     baseCfg.RedisConfig.Addr,
			Password: baseCfg.RedisConfig.Password,
			DB:       baseCfg.RedisConfig.DB,
			Enabled:  baseCfg.RedisConfig.Enabled,
		},
		CorsConfig: middleware.CorsConfig{
			AllowedOrigins: baseCfg.CorsConfig.AllowedOrigins,
			Role:           middleware.CorsRole(baseCfg.CorsConfig.Role),
		},
	}

	logger.Debug("YAML config mapping complete",
		"listen_addr", cfg.ListenAddr,
		"vendor_base_url", cfg.Vendor.BaseURL,
	)

	return cfg, nil
}
