// Package engagebridge assembles the bridge service: the bridge core, the
// runtime-facing HTTP API, and the server lifecycle around them.
package engagebridge

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tinywideclouds/go-microservice-base/pkg/microservice"
	"github.com/tinywideclouds/go-microservice-base/pkg/middleware"

	"github.com/tinywideclouds/go-engage-bridge/engagebridge/config"
	"github.com/tinywideclouds/go-engage-bridge/internal/api"
	"github.com/tinywideclouds/go-engage-bridge/pkg/bridge"
)

type Wrapper struct {
	*microservice.BaseServer
	bridge *bridge.Bridge
	logger *slog.Logger
}

// New assembles the service around an injected platform collaborator.
func New(
	cfg *config.Config,
	collab bridge.Collaborator,
	authMiddleware func(http.Handler) http.Handler,
	logger *slog.Logger,
) (*Wrapper, error) {

	// 1. Base Server
	baseServer := microservice.NewBaseServer(logger, cfg.ListenAddr)

	// 2. Bridge core
	b := bridge.New(collab, bridge.Options{InitialDeepLink: cfg.LaunchURL}, logger)

	// 3. API
	bridgeAPI := api.NewBridgeAPI(b, logger)

	// Register Routes
	mux := baseServer.Mux()
	corsMiddleware := middleware.NewCorsMiddleware(cfg.CorsConfig, logger)

	handle := func(pattern string, handlerFunc http.HandlerFunc) {
		mux.Handle(pattern, corsMiddleware(authMiddleware(handlerFunc)))
	}

	// Identity & push
	handle("POST /api/v1/users/identify", bridgeAPI.Identify)
	handle("POST /api/v1/users/push-token", bridgeAPI.RegisterPushToken)

	// Profile
	handle("POST /api/v1/profile/field", bridgeAPI.SetProfileField)
	handle("POST /api/v1/profile/date-of-birth", bridgeAPI.SetDateOfBirth)
	handle("POST /api/v1/profile/gender", bridgeAPI.SetGender)
	handle("POST /api/v1/profile/subscription", bridgeAPI.SetSubscriptionState)
	handle("POST /api/v1/profile/twitter", bridgeAPI.SetTwitterData)
	handle("POST /api/v1/profile/facebook", bridgeAPI.SetFacebookData)

	// Custom attributes
	handle("POST /api/v1/attributes/set", bridgeAPI.SetCustomAttribute)
	handle("POST /api/v1/attributes/unset", bridgeAPI.UnsetCustomAttribute)
	handle("POST /api/v1/attributes/increment", bridgeAPI.IncrementCustomAttribute)
	handle("POST /api/v1/attributes/array/add", bridgeAPI.AddToCustomAttributeArray)
	handle("POST /api/v1/attributes/array/remove", bridgeAPI.RemoveFromCustomAttributeArray)

	// Events
	handle("POST /api/v1/events/custom", bridgeAPI.LogCustomEvent)
	handle("POST /api/v1/events/purchase", bridgeAPI.LogPurchase)
	handle("POST /api/v1/events/feedback", bridgeAPI.SubmitFeedback)
	handle("POST /api/v1/data/flush", bridgeAPI.RequestImmediateFlush)
	handle("GET /api/v1/deep-link", bridgeAPI.InitialDeepLink)

	// Feed
	handle("GET /api/v1/feed/cards", bridgeAPI.GetFeedCards)
	handle("GET /api/v1/feed/cards/count", bridgeAPI.CardCount)
	handle("GET /api/v1/feed/cards/unread-count", bridgeAPI.UnreadCardCount)
	handle("POST /api/v1/feed/cards/{id}/impression", bridgeAPI.LogCardImpression)
	handle("POST /api/v1/feed/cards/{id}/click", bridgeAPI.LogCardClick)
	handle("POST /api/v1/feed/refresh", bridgeAPI.RequestFeedRefresh)
	handle("POST /api/v1/feed/launch", bridgeAPI.LaunchFeed)

	// Global OPTIONS for the API namespace (CORS preflight)
	mux.Handle("OPTIONS /api/v1/", corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Just returns 200 OK with CORS headers handled by middleware
	})))

	return &Wrapper{
		BaseServer: baseServer,
		bridge:     b,
		logger:     logger,
	}, nil
}

func (w *Wrapper) Start(ctx context.Context) error {
	w.logger.Info("Bridge service starting...")
	w.SetReady(true)
	w.logger.Info("Service is now ready.")
	return w.BaseServer.Start()
}

func (w *Wrapper) Shutdown(ctx context.Context) error {
	w.logger.Info("Shutting down service components...")
	w.bridge.Close()
	if err := w.BaseServer.Shutdown(ctx); err != nil {
		w.logger.Error("HTTP server shutdown failed.", "err", err)
		return err
	}
	w.logger.Info("Service shutdown complete.")
	return nil
}
