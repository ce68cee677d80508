package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tinywideclouds/go-microservice-base/pkg/response"

	"github.com/tinywideclouds/go-engage-bridge/pkg/bridge"
	"github.com/tinywideclouds/go-engage-bridge/pkg/feed"
)

// GetFeedCards blocks until the platform's feed-update signal resolves the
// request, then returns the mapped card list.
func (a *BridgeAPI) GetFeedCards(w http.ResponseWriter, r *http.Request) {
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.GetFeedCards(r.Context(), cb)
	})
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) CardCount(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.CardCount(r.Context(), category, cb)
	})
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) UnreadCardCount(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.UnreadCardCount(r.Context(), category, cb)
	})
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) LogCardImpression(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if cardID == "" {
		response.WriteJSONError(w, http.StatusBadRequest, "missing card id")
		return
	}
	a.Bridge.LogCardImpression(r.Context(), cardID)
	w.WriteHeader(http.StatusNoContent)
}

func (a *BridgeAPI) LogCardClick(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if cardID == "" {
		response.WriteJSONError(w, http.StatusBadRequest, "missing card id")
		return
	}
	a.Bridge.LogCardClick(r.Context(), cardID)
	w.WriteHeader(http.StatusNoContent)
}

func (a *BridgeAPI) RequestFeedRefresh(w http.ResponseWriter, r *http.Request) {
	a.Bridge.RequestFeedRefresh(r.Context())
	w.WriteHeader(http.StatusAccepted)
}

// LaunchFeed presents the platform feed UI. The options body is optional.
func (a *BridgeAPI) LaunchFeed(w http.ResponseWriter, r *http.Request) {
	var opts feed.DisplayOptions
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		response.WriteJSONError(w, http.StatusBadRequest, "invalid json")
		return
	}
	a.Bridge.LaunchFeed(r.Context(), opts)
	w.WriteHeader(http.StatusNoContent)
}
