package api

import (
	"net/http"

	"github.com/tinywideclouds/go-microservice-base/pkg/response"

	"github.com/tinywideclouds/go-engage-bridge/pkg/bridge"
)

type customEventRequest struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
}

func (a *BridgeAPI) LogCustomEvent(w http.ResponseWriter, r *http.Request) {
	var req customEventRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		response.WriteJSONError(w, http.StatusBadRequest, "missing event name")
		return
	}
	a.Bridge.LogCustomEvent(r.Context(), req.Name, req.Properties)
	w.WriteHeader(http.StatusNoContent)
}

func (a *BridgeAPI) LogPurchase(w http.ResponseWriter, r *http.Request) {
	var req bridge.Purchase
	if !a.decode(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		response.WriteJSONError(w, http.StatusBadRequest, "missing product_id")
		return
	}
	a.Bridge.LogPurchase(r.Context(), req)
	w.WriteHeader(http.StatusNoContent)
}

type feedbackRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	IsBug   bool   `json:"is_bug"`
}

func (a *BridgeAPI) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if !a.decode(w, r, &req) {
		return
	}
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.SubmitFeedback(r.Context(), req.Email, req.Message, req.IsBug, cb)
	})
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) RequestImmediateFlush(w http.ResponseWriter, r *http.Request) {
	a.Bridge.RequestImmediateFlush(r.Context())
	w.WriteHeader(http.StatusAccepted)
}

func (a *BridgeAPI) InitialDeepLink(w http.ResponseWriter, r *http.Request) {
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.InitialDeepLink(cb)
	})
	a.writeResult(w, result, err)
}
