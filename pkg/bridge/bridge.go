// Package bridge exposes the wrapped engagement platform to application
// code: typed operations in, error-first callbacks out. The bridge owns no
// domain state of its own; every operation forwards to the injected
// Collaborator and marshals the result back.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tinywideclouds/go-engage-bridge/internal/refresh"
)

// Options carries the launch-time values the bridge reports on request.
type Options struct {
	// InitialDeepLink is the URL the host application was launched with,
	// if any.
	InitialDeepLink string
}

// Bridge is the method surface application code calls. Operations without
// a callback are fire-and-forget: platform errors are logged, never raised.
type Bridge struct {
	collab     Collaborator
	correlator *refresh.Correlator
	opts       Options
	logger     *slog.Logger
}

// New wires a bridge around an injected platform handle and starts the
// single consumer of the platform's feed-update signal.
func New(collab Collaborator, opts Options, logger *slog.Logger) *Bridge {
	return &Bridge{
		collab:     collab,
		correlator: refresh.NewCorrelator(collab.Updates(), logger),
		opts:       opts,
		logger:     logger.With("component", "Bridge"),
	}
}

// Close stops the feed-update consumer. Callbacks still awaiting a feed
// refresh are resolved with the retrieval-failed error.
func (b *Bridge) Close() {
	b.correlator.Close()
}

// --- Identity & push ---

func (b *Bridge) Identify(ctx context.Context, userID string) {
	if err := b.collab.Identify(ctx, userID); err != nil {
		b.logger.Error("Identify failed", "err", err)
	}
}

func (b *Bridge) RegisterPushToken(ctx context.Context, token string) {
	if err := b.collab.RegisterPushToken(ctx, token); err != nil {
		b.logger.Error("Push token registration failed", "err", err)
	}
}

// --- Standard profile fields, one operation per field ---

func (b *Bridge) SetFirstName(ctx context.Context, v string) { b.setField(ctx, FieldFirstName, v) }
func (b *Bridge) SetLastName(ctx context.Context, v string)  { b.setField(ctx, FieldLastName, v) }
func (b *Bridge) SetEmail(ctx context.Context, v string)     { b.setField(ctx, FieldEmail, v) }
func (b *Bridge) SetCountry(ctx context.Context, v string)   { b.setField(ctx, FieldCountry, v) }
func (b *Bridge) SetHomeCity(ctx context.Context, v string)  { b.setField(ctx, FieldHomeCity, v) }
func (b *Bridge) SetPhoneNumber(ctx context.Context, v string) {
	b.setField(ctx, FieldPhoneNumber, v)
}
func (b *Bridge) SetAvatarImageURL(ctx context.Context, v string) {
	b.setField(ctx, FieldAvatarURL, v)
}

func (b *Bridge) setField(ctx context.Context, field ProfileField, value string) {
	if err := b.collab.SetField(ctx, field, value); err != nil {
		b.logger.Error("Profile field update failed", "field", string(field), "err", err)
	}
}

func (b *Bridge) SetDateOfBirth(ctx context.Context, year, month, day int) {
	if err := b.collab.SetDateOfBirth(ctx, year, time.Month(month), day); err != nil {
		b.logger.Error("Date of birth update failed", "err", err)
	}
}

// SetGender validates the token locally: anything not starting with "m" or
// "f" (any casing) is rejected without touching the platform.
func (b *Bridge) SetGender(ctx context.Context, token string, cb Callback) {
	g, ok := resolveGender(token)
	if !ok {
		b.report(cb, "SetGender", fmt.Sprintf("Invalid input %s. Gender not set.", token), nil)
		return
	}
	if err := b.collab.SetGender(ctx, g); err != nil {
		b.report(cb, "SetGender", err.Error(), nil)
		return
	}
	b.report(cb, "SetGender", "", true)
}

func resolveGender(token string) (Gender, bool) {
	t := strings.ToLower(token)
	switch {
	case strings.HasPrefix(t, "m"):
		return GenderMale, true
	case strings.HasPrefix(t, "f"):
		return GenderFemale, true
	default:
		return "", false
	}
}

// --- Subscription states ---

func (b *Bridge) SetEmailSubscriptionState(ctx context.Context, token string, cb Callback) {
	b.setSubscription(ctx, ChannelEmail, token, cb)
}

func (b *Bridge) SetPushSubscriptionState(ctx context.Context, token string, cb Callback) {
	b.setSubscription(ctx, ChannelPush, token, cb)
}

func (b *Bridge) setSubscription(ctx context.Context, ch Channel, token string, cb Callback) {
	state := ResolveSubscriptionState(token)
	if state == SubscriptionInvalid {
		b.report(cb, "SetSubscriptionState", fmt.Sprintf("Invalid subscription state %s.", token), nil)
		return
	}
	if err := b.collab.SetSubscriptionState(ctx, ch, state); err != nil {
		b.report(cb, "SetSubscriptionState", err.Error(), nil)
		return
	}
	b.report(cb, "SetSubscriptionState", "", true)
}

// --- Custom attributes ---

func (b *Bridge) SetCustomAttribute(ctx context.Context, key string, value any, cb Callback) {
	b.reportAttribute(cb, "SetCustomAttribute", b.collab.SetAttribute(ctx, key, value))
}

func (b *Bridge) UnsetCustomAttribute(ctx context.Context, key string, cb Callback) {
	b.reportAttribute(cb, "UnsetCustomAttribute", b.collab.UnsetAttribute(ctx, key))
}

func (b *Bridge) IncrementCustomAttribute(ctx context.Context, key string, by int, cb Callback) {
	b.reportAttribute(cb, "IncrementCustomAttribute", b.collab.IncrementAttribute(ctx, key, by))
}

func (b *Bridge) AddToCustomAttributeArray(ctx context.Context, key, value string, cb Callback) {
	b.reportAttribute(cb, "AddToCustomAttributeArray", b.collab.AddToAttributeArray(ctx, key, value))
}

func (b *Bridge) RemoveFromCustomAttributeArray(ctx context.Context, key, value string, cb Callback) {
	b.reportAttribute(cb, "RemoveFromCustomAttributeArray", b.collab.RemoveFromAttributeArray(ctx, key, value))
}

func (b *Bridge) reportAttribute(cb Callback, op string, err error) {
	if err != nil {
		b.report(cb, op, err.Error(), nil)
		return
	}
	b.report(cb, op, "", true)
}

// --- Third-party profile data ---

func (b *Bridge) SetTwitterData(ctx context.Context, p TwitterProfile) {
	if err := b.collab.SetTwitterData(ctx, p); err != nil {
		b.logger.Error("Twitter data update failed", "err", err)
	}
}

func (b *Bridge) SetFacebookData(ctx context.Context, p FacebookProfile) {
	if err := b.collab.SetFacebookData(ctx, p); err != nil {
		b.logger.Error("Facebook data update failed", "err", err)
	}
}

// --- Events ---

func (b *Bridge) LogCustomEvent(ctx context.Context, name string, properties map[string]any) {
	if err := b.collab.LogCustomEvent(ctx, name, properties); err != nil {
		b.logger.Error("Custom event logging failed", "event", name, "err", err)
	}
}

func (b *Bridge) LogPurchase(ctx context.Context, p Purchase) {
	if err := b.collab.LogPurchase(ctx, p); err != nil {
		b.logger.Error("Purchase logging failed", "product_id", p.ProductID, "err", err)
	}
}

func (b *Bridge) SubmitFeedback(ctx context.Context, email, message string, isBug bool, cb Callback) {
	if err := b.collab.SubmitFeedback(ctx, email, message, isBug); err != nil {
		b.report(cb, "SubmitFeedback", err.Error(), nil)
		return
	}
	b.report(cb, "SubmitFeedback", "", true)
}

func (b *Bridge) RequestImmediateFlush(ctx context.Context) {
	if err := b.collab.RequestImmediateFlush(ctx); err != nil {
		b.logger.Error("Immediate flush request failed", "err", err)
	}
}

// --- Launch-time values ---

// InitialDeepLink reports the URL captured at application launch.
func (b *Bridge) InitialDeepLink(cb Callback) {
	if b.opts.InitialDeepLink == "" {
		b.report(cb, "InitialDeepLink", "Initial URL string was nil.", nil)
		return
	}
	b.report(cb, "InitialDeepLink", "", b.opts.InitialDeepLink)
}
