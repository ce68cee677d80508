package api

import (
	"net/http"

	"github.com/tinywideclouds/go-microservice-base/pkg/response"

	"github.com/tinywideclouds/go-engage-bridge/pkg/bridge"
)

type identifyRequest struct {
	UserID string `json:"user_id"`
}

func (a *BridgeAPI) Identify(w http.ResponseWriter, r *http.Request) {
	var req identifyRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.UserID == "" {
		response.WriteJSONError(w, http.StatusBadRequest, "missing user_id")
		return
	}
	a.Bridge.Identify(r.Context(), req.UserID)
	w.WriteHeader(http.StatusNoContent)
}

type pushTokenRequest struct {
	Token string `json:"token"`
}

func (a *BridgeAPI) RegisterPushToken(w http.ResponseWriter, r *http.Request) {
	var req pushTokenRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Token == "" {
		response.WriteJSONError(w, http.StatusBadRequest, "missing token")
		return
	}
	a.Bridge.RegisterPushToken(r.Context(), req.Token)
	w.WriteHeader(http.StatusNoContent)
}

type profileFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SetProfileField dispatches to the per-field bridge operations.
func (a *BridgeAPI) SetProfileField(w http.ResponseWriter, r *http.Request) {
	var req profileFieldRequest
	if !a.decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	switch bridge.ProfileField(req.Field) {
	case bridge.FieldFirstName:
		a.Bridge.SetFirstName(ctx, req.Value)
	case bridge.FieldLastName:
		a.Bridge.SetLastName(ctx, req.Value)
	case bridge.FieldEmail:
		a.Bridge.SetEmail(ctx, req.Value)
	case bridge.FieldCountry:
		a.Bridge.SetCountry(ctx, req.Value)
	case bridge.FieldHomeCity:
		a.Bridge.SetHomeCity(ctx, req.Value)
	case bridge.FieldPhoneNumber:
		a.Bridge.SetPhoneNumber(ctx, req.Value)
	case bridge.FieldAvatarURL:
		a.Bridge.SetAvatarImageURL(ctx, req.Value)
	default:
		response.WriteJSONError(w, http.StatusBadRequest, "unknown profile field")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dateOfBirthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (a *BridgeAPI) SetDateOfBirth(w http.ResponseWriter, r *http.Request) {
	var req dateOfBirthRequest
	if !a.decode(w, r, &req) {
		return
	}
	a.Bridge.SetDateOfBirth(r.Context(), req.Year, req.Month, req.Day)
	w.WriteHeader(http.StatusNoContent)
}

type genderRequest struct {
	Gender string `json:"gender"`
}

func (a *BridgeAPI) SetGender(w http.ResponseWriter, r *http.Request) {
	var req genderRequest
	if !a.decode(w, r, &req) {
		return
	}
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.SetGender(r.Context(), req.Gender, cb)
	})
	a.writeResult(w, result, err)
}

type subscriptionRequest struct {
	Channel string `json:"channel"`
	State   string `json:"state"`
}

func (a *BridgeAPI) SetSubscriptionState(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if !a.decode(w, r, &req) {
		return
	}

	var op func(bridge.Callback)
	switch bridge.Channel(req.Channel) {
	case bridge.ChannelEmail:
		op = func(cb bridge.Callback) { a.Bridge.SetEmailSubscriptionState(r.Context(), req.State, cb) }
	case bridge.ChannelPush:
		op = func(cb bridge.Callback) { a.Bridge.SetPushSubscriptionState(r.Context(), req.State, cb) }
	default:
		response.WriteJSONError(w, http.StatusBadRequest, "unknown channel")
		return
	}

	result, err := awaitCallback(op)
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) SetTwitterData(w http.ResponseWriter, r *http.Request) {
	var req bridge.TwitterProfile
	if !a.decode(w, r, &req) {
		return
	}
	a.Bridge.SetTwitterData(r.Context(), req)
	w.WriteHeader(http.StatusNoContent)
}

func (a *BridgeAPI) SetFacebookData(w http.ResponseWriter, r *http.Request) {
	var req bridge.FacebookProfile
	if !a.decode(w, r, &req) {
		return
	}
	a.Bridge.SetFacebookData(r.Context(), req)
	w.WriteHeader(http.StatusNoContent)
}

// --- Custom attributes ---

type attributeRequest struct {
	Key   string `json:"key"`
	Value any    `json:"value,omitempty"`
	By    int    `json:"by,omitempty"`
}

func (a *BridgeAPI) SetCustomAttribute(w http.ResponseWriter, r *http.Request) {
	var req attributeRequest
	if !a.decode(w, r, &req) {
		return
	}
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.SetCustomAttribute(r.Context(), req.Key, req.Value, cb)
	})
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) UnsetCustomAttribute(w http.ResponseWriter, r *http.Request) {
	var req attributeRequest
	if !a.decode(w, r, &req) {
		return
	}
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.UnsetCustomAttribute(r.Context(), req.Key, cb)
	})
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) IncrementCustomAttribute(w http.ResponseWriter, r *http.Request) {
	var req attributeRequest
	if !a.decode(w, r, &req) {
		return
	}
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.IncrementCustomAttribute(r.Context(), req.Key, req.By, cb)
	})
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) AddToCustomAttributeArray(w http.ResponseWriter, r *http.Request) {
	var req attributeRequest
	if !a.decode(w, r, &req) {
		return
	}
	value, _ := req.Value.(string)
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.AddToCustomAttributeArray(r.Context(), req.Key, value, cb)
	})
	a.writeResult(w, result, err)
}

func (a *BridgeAPI) RemoveFromCustomAttributeArray(w http.ResponseWriter, r *http.Request) {
	var req attributeRequest
	if !a.decode(w, r, &req) {
		return
	}
	value, _ := req.Value.(string)
	result, err := awaitCallback(func(cb bridge.Callback) {
		a.Bridge.RemoveFromCustomAttributeArray(r.Context(), req.Key, value, cb)
	})
	a.writeResult(w, result, err)
}
