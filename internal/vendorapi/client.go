// Package vendorapi implements the platform collaborator over the
// vendor's public REST surface. Nothing deeper than the documented
// endpoints is touched here: delivery, batching, retries and durable
// storage all stay on the vendor's side of the line.
package vendorapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/tinywideclouds/go-engage-bridge/internal/storage/snapshot"
	"github.com/tinywideclouds/go-engage-bridge/pkg/bridge"
	"github.com/tinywideclouds/go-engage-bridge/pkg/feed"
)

const defaultTimeout = 10 * time.Second

// Config carries the vendor endpoint and credentials.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks JSON/HTTP to the vendor and keeps the last synced feed per
// user in a snapshot store. It implements the full bridge.Collaborator
// surface.
type Client struct {
	cfg        Config
	httpClient *http.Client
	store      snapshot.Store
	logger     *slog.Logger

	updates chan feed.Update

	mu     sync.RWMutex
	userID string
}

var _ bridge.Collaborator = (*Client)(nil)

func NewClient(cfg Config, store snapshot.Store, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		store:      store,
		logger:     logger.With("component", "VendorClient"),
		updates:    make(chan feed.Update, 8),
	}
}

// --- Identity & profile ---

func (c *Client) Identify(ctx context.Context, userID string) error {
	c.mu.Lock()
	c.userID = userID
	c.mu.Unlock()

	return c.post(ctx, "/v1/users/identify", map[string]any{"user_id": userID})
}

func (c *Client) SetField(ctx context.Context, field bridge.ProfileField, value string) error {
	return c.trackAttributes(ctx, map[string]any{string(field): value})
}

func (c *Client) SetDateOfBirth(ctx context.Context, year int, month time.Month, day int) error {
	return c.trackAttributes(ctx, map[string]any{
		"dob": fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
	})
}

func (c *Client) SetGender(ctx context.Context, g bridge.Gender) error {
	return c.trackAttributes(ctx, map[string]any{"gender": string(g)})
}

func (c *Client) SetSubscriptionState(ctx context.Context, ch bridge.Channel, s bridge.SubscriptionState) error {
	return c.trackAttributes(ctx, map[string]any{
		fmt.Sprintf("%s_subscribe", ch): s.String(),
	})
}

func (c *Client) SetTwitterData(ctx context.Context, p bridge.TwitterProfile) error {
	return c.trackAttributes(ctx, map[string]any{"twitter": p})
}

func (c *Client) SetFacebookData(ctx context.Context, p bridge.FacebookProfile) error {
	return c.trackAttributes(ctx, map[string]any{"facebook": p})
}

// --- Custom attributes ---

func (c *Client) SetAttribute(ctx context.Context, key string, value any) error {
	return c.trackAttributes(ctx, map[string]any{key: value})
}

// UnsetAttribute clears the key vendor-side; the wire convention is an
// explicit null value.
func (c *Client) UnsetAttribute(ctx context.Context, key string) error {
	return c.trackAttributes(ctx, map[string]any{key: nil})
}

func (c *Client) IncrementAttribute(ctx context.Context, key string, by int) error {
	return c.trackAttributes(ctx, map[string]any{key: map[string]any{"inc": by}})
}

func (c *Client) AddToAttributeArray(ctx context.Context, key, value string) error {
	return c.trackAttributes(ctx, map[string]any{key: map[string]any{"add": []string{value}}})
}

func (c *Client) RemoveFromAttributeArray(ctx context.Context, key, value string) error {
	return c.trackAttributes(ctx, map[string]any{key: map[string]any{"remove": []string{value}}})
}

// --- Events ---

func (c *Client) LogCustomEvent(ctx context.Context, name string, properties map[string]any) error {
	return c.post(ctx, "/v1/users/track", trackRequest{
		UserID: c.currentUser(),
		Events: []trackEvent{{
			Name:       name,
			Time:       time.Now().UTC().Format(time.RFC3339),
			Properties: properties,
		}},
	})
}

func (c *Client) LogPurchase(ctx context.Context, p bridge.Purchase) error {
	return c.post(ctx, "/v1/users/track", trackRequest{
		UserID:    c.currentUser(),
		Purchases: []bridge.Purchase{p},
	})
}

func (c *Client) SubmitFeedback(ctx context.Context, email, message string, isBug bool) error {
	return c.post(ctx, "/v1/feedback", map[string]any{
		"email":   email,
		"message": message,
		"is_bug":  isBug,
	})
}

func (c *Client) RequestImmediateFlush(ctx context.Context) error {
	return c.post(ctx, "/v1/data/flush", map[string]any{"user_id": c.currentUser()})
}

// --- Push ---

func (c *Client) RegisterPushToken(ctx context.Context, token string) error {
	return c.post(ctx, "/v1/push/tokens", map[string]any{
		"user_id": c.currentUser(),
		"token":   token,
	})
}

// --- Feed ---

// RequestRefresh starts a feed sync in the background and returns
// immediately. Exactly one Update is emitted per call.
func (c *Client) RequestRefresh(_ context.Context) error {
	go c.sync(c.currentUser())
	return nil
}

func (c *Client) sync(userID string) {
	// The caller's request context has usually ended by the time the sync
	// runs, so the sync carries its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	cards, err := c.fetchFeed(ctx, userID)
	if err == nil {
		err = c.store.Save(ctx, userID, cards)
	}
	if err != nil {
		c.logger.Error("Feed sync failed", "user_id", userID, "err", err)
		c.emit(feed.Update{Succeeded: false})
		return
	}
	c.logger.Info("Feed synced", "user_id", userID, "cards", len(cards))
	c.emit(feed.Update{Succeeded: true})
}

func (c *Client) emit(u feed.Update) {
	select {
	case c.updates <- u:
	default:
		c.logger.Warn("Feed update dropped, updates channel full")
	}
}

func (c *Client) Updates() <-chan feed.Update {
	return c.updates
}

func (c *Client) Cards(ctx context.Context) ([]feed.Card, error) {
	stored, err := c.store.Load(ctx, c.currentUser())
	if err != nil {
		return nil, err
	}
	cards := make([]feed.Card, 0, len(stored))
	for _, sc := range stored {
		if fc, ok := sc.ToFeed(); ok {
			cards = append(cards, fc)
		}
	}
	return cards, nil
}

func (c *Client) CardCount(ctx context.Context, category feed.Category) (int, error) {
	return c.count(ctx, category, false)
}

func (c *Client) UnreadCardCount(ctx context.Context, category feed.Category) (int, error) {
	return c.count(ctx, category, true)
}

func (c *Client) count(ctx context.Context, category feed.Category, unreadOnly bool) (int, error) {
	stored, err := c.store.Load(ctx, c.currentUser())
	if err != nil {
		return 0, err
	}
	n := 0
	for _, sc := range stored {
		if unreadOnly && sc.Viewed {
			continue
		}
		if matchesCategory(sc, category) {
			n++
		}
	}
	return n, nil
}

func matchesCategory(c snapshot.Card, category feed.Category) bool {
	switch category {
	case feed.CategoryAll:
		return true
	case feed.CategoryNoCategory:
		return len(c.Categories) == 0
	}
	token := category.String()
	for _, cc := range c.Categories {
		if strings.EqualFold(cc, token) {
			return true
		}
	}
	return false
}

func (c *Client) LogCardImpression(ctx context.Context, card feed.Card) error {
	return c.logFeedEvent(ctx, card, "impression")
}

func (c *Client) LogCardClick(ctx context.Context, card feed.Card) error {
	return c.logFeedEvent(ctx, card, "click")
}

func (c *Client) logFeedEvent(ctx context.Context, card feed.Card, event string) error {
	return c.post(ctx, "/v1/feed/events", map[string]any{
		"user_id": c.currentUser(),
		"card_id": feed.CardID(card),
		"event":   event,
	})
}

func (c *Client) LaunchFeed(ctx context.Context, opts feed.DisplayOptions) error {
	return c.post(ctx, "/v1/feed/launch", map[string]any{
		"user_id": c.currentUser(),
		"options": opts,
	})
}

// --- Wire types & transport ---

type trackRequest struct {
	UserID     string            `json:"user_id"`
	Attributes map[string]any    `json:"attributes,omitempty"`
	Events     []trackEvent      `json:"events,omitempty"`
	Purchases  []bridge.Purchase `json:"purchases,omitempty"`
}

type trackEvent struct {
	Name       string         `json:"name"`
	Time       string         `json:"time"`
	Properties map[string]any `json:"properties,omitempty"`
}

type feedResponse struct {
	Cards []snapshot.Card `json:"cards"`
}

func (c *Client) trackAttributes(ctx context.Context, attrs map[string]any) error {
	return c.post(ctx, "/v1/users/track", trackRequest{
		UserID:     c.currentUser(),
		Attributes: attrs,
	})
}

func (c *Client) currentUser() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) fetchFeed(ctx context.Context, userID string) ([]snapshot.Card, error) {
	endpoint := fmt.Sprintf("%s/v1/feed/cards?user_id=%s", c.cfg.BaseURL, url.QueryEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch: unexpected status %d", resp.StatusCode)
	}

	var parsed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("feed fetch: decode failed: %w", err)
	}
	return parsed.Cards, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("vendor api %s: encode failed: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vendor api %s: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("vendor api %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
}
