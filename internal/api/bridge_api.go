// Package api exposes the bridge method surface to the application
// runtime over HTTP. Handlers adapt the bridge's error-first callback
// convention to status codes: a callback error becomes a 400 with a JSON
// error body, a callback result becomes a 200 with {"result": ...}.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tinywideclouds/go-microservice-base/pkg/response"

	"github.com/tinywideclouds/go-engage-bridge/pkg/bridge"
)

type BridgeAPI struct {
	Bridge *bridge.Bridge
	Logger *slog.Logger
}

func NewBridgeAPI(b *bridge.Bridge, logger *slog.Logger) *BridgeAPI {
	return &BridgeAPI{
		Bridge: b,
		Logger: logger.With("component", "BridgeAPI"),
	}
}

// awaitCallback runs a callback-bearing bridge operation and blocks until
// its single callback invocation arrives.
func awaitCallback(run func(bridge.Callback)) (any, error) {
	done := make(chan struct{})
	var (
		result any
		cbErr  error
	)
	run(func(err error, res any) {
		cbErr = err
		result = res
		close(done)
	})
	<-done
	return result, cbErr
}

func (a *BridgeAPI) writeResult(w http.ResponseWriter, result any, err error) {
	if err != nil {
		response.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(map[string]any{"result": result}); encodeErr != nil {
		a.Logger.Error("Response encoding failed", "err", encodeErr)
	}
}

func (a *BridgeAPI) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		response.WriteJSONError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}
