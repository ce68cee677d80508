package main

import (
	"context"
	_ "embed"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/tinywideclouds/go-microservice-base/pkg/middleware"
	"gopkg.in/yaml.v3"

	"github.com/tinywideclouds/go-engage-bridge/engagebridge"
	"github.com/tinywideclouds/go-engage-bridge/engagebridge/config"
	"github.com/tinywideclouds/go-engage-bridge/internal/storage/cache"
	"github.com/tinywideclouds/go-engage-bridge/internal/storage/snapshot"
	"github.com/tinywideclouds/go-engage-bridge/internal/vendorapi"
)

//go:embed local.yaml
var configFile []byte

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	var logLevel slog.Level
	switch os.Getenv("LOG_LEVEL") {
	case "debug", "DEBUG":
		logLevel = slog.LevelDebug
	case "info", "INFO":
		logLevel = slog.LevelInfo
	case "warn", "WARN":
		logLevel = slog.LevelWarn
	case "error", "ERROR":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})).With("service", "go-engage-bridge")
	slog.SetDefault(logger)

	ctx := context.Background()

	// --- Config Loading ---
	var yamlCfg config.YamlConfig
	if err := yaml.Unmarshal(configFile, &yamlCfg); err != nil {
		logger.Error("Failed to unmarshal embedded yaml config", "err", err)
		os.Exit(1)
	}
	baseCfg, _ := config.NewConfigFromYaml(&yamlCfg, logger)
	cfg, err := config.UpdateConfigWithEnvOverrides(baseCfg, logger)
	if err != nil {
		logger.Error("Config failed", "err", err)
		os.Exit(1)
	}

	// --- Feed Snapshot Store ---
	var store snapshot.Store = snapshot.NewMemoryStore()
	logger.Info("Feed snapshot store initialized", "type", "memory")

	if cfg.Redis.Enabled {
		logger.Info("Initializing Redis snapshot store...", "addr", cfg.Redis.Addr)
		redisClient, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		store = cache.NewFeedStore(redisClient, cfg.FeedSnapshotTTL)
		logger.Info("Feed snapshot store upgraded", "type", "redis")
	}

	// --- Platform Collaborator ---
	collab := vendorapi.NewClient(vendorapi.Config{
		BaseURL: cfg.Vendor.BaseURL,
		APIKey:  cfg.Vendor.APIKey,
		Timeout: cfg.Vendor.Timeout,
	}, store, logger)

	// --- Auth ---
	identityURL := os.Getenv("IDENTITY_SERVICE_URL")
	if identityURL == "" {
		identityURL = "http://localhost:3000"
	}
	jwksURL, _ := middleware.DiscoverAndValidateJWTConfig(identityURL, middleware.RSA256, logger)
	authMiddleware, _ := middleware.NewJWKSAuthMiddleware(jwksURL, logger)

	// --- Service ---
	service, err := engagebridge.New(cfg, collab, authMiddleware, logger)
	if err != nil {
		logger.Error("Service creation failed", "err", err)
		os.Exit(1)
	}

	logger.Info("Starting service...")
	if err := service.Start(ctx); err != nil {
		logger.Error("Service shutdown with error", "err", err)
		os.Exit(1)
	}
}
