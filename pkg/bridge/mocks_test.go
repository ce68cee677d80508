package bridge_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tinywideclouds/go-engage-bridge/pkg/bridge"
	"github.com/tinywideclouds/go-engage-bridge/pkg/feed"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockCollaborator is a testify mock over the full platform surface.
// Updates() hands out a plain channel so tests can fire the feed-update
// signal directly.
type MockCollaborator struct {
	mock.Mock
	updates chan feed.Update
}

func newMockCollaborator() *MockCollaborator {
	return &MockCollaborator{updates: make(chan feed.Update, 4)}
}

func (m *MockCollaborator) Updates() <-chan feed.Update { return m.updates }

// --- UserProfile ---

func (m *MockCollaborator) Identify(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockCollaborator) SetField(ctx context.Context, field bridge.ProfileField, value string) error {
	return m.Called(ctx, field, value).Error(0)
}
func (m *MockCollaborator) SetDateOfBirth(ctx context.Context, year int, month time.Month, day int) error {
	return m.Called(ctx, year, month, day).Error(0)
}
func (m *MockCollaborator) SetGender(ctx context.Context, g bridge.Gender) error {
	return m.Called(ctx, g).Error(0)
}
func (m *MockCollaborator) SetSubscriptionState(ctx context.Context, ch bridge.Channel, s bridge.SubscriptionState) error {
	return m.Called(ctx, ch, s).Error(0)
}
func (m *MockCollaborator) SetTwitterData(ctx context.Context, p bridge.TwitterProfile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockCollaborator) SetFacebookData(ctx context.Context, p bridge.FacebookProfile) error {
	return m.Called(ctx, p).Error(0)
}

// --- CustomAttributes ---

func (m *MockCollaborator) SetAttribute(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}
func (m *MockCollaborator) UnsetAttribute(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
func (m *MockCollaborator) IncrementAttribute(ctx context.Context, key string, by int) error {
	return m.Called(ctx, key, by).Error(0)
}
func (m *MockCollaborator) AddToAttributeArray(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}
func (m *MockCollaborator) RemoveFromAttributeArray(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

// --- EventSink ---

func (m *MockCollaborator) LogCustomEvent(ctx context.Context, name string, properties map[string]any) error {
	return m.Called(ctx, name, properties).Error(0)
}
func (m *MockCollaborator) LogPurchase(ctx context.Context, p bridge.Purchase) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockCollaborator) SubmitFeedback(ctx context.Context, email, message string, isBug bool) error {
	return m.Called(ctx, email, message, isBug).Error(0)
}
func (m *MockCollaborator) RequestImmediateFlush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// --- PushRegistrar ---

func (m *MockCollaborator) RegisterPushToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// --- FeedController ---

func (m *MockCollaborator) RequestRefresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockCollaborator) Cards(ctx context.Context) ([]feed.Card, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feed.Card), args.Error(1)
}
func (m *MockCollaborator) CardCount(ctx context.Context, category feed.Category) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}
func (m *MockCollaborator) UnreadCardCount(ctx context.Context, category feed.Category) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}
func (m *MockCollaborator) LogCardImpression(ctx context.Context, card feed.Card) error {
	return m.Called(ctx, card).Error(0)
}
func (m *MockCollaborator) LogCardClick(ctx context.Context, card feed.Card) error {
	return m.Called(ctx, card).Error(0)
}
func (m *MockCollaborator) LaunchFeed(ctx context.Context, opts feed.DisplayOptions) error {
	return m.Called(ctx, opts).Error(0)
}

// --- Helpers ---

type callbackCapture struct {
	invocations int
	err         error
	result      any
}

// capture returns a Callback recording its single invocation. Safe for the
// synchronous operations where the callback fires inline.
func (c *callbackCapture) capture() bridge.Callback {
	return func(err error, result any) {
		c.invocations++
		c.err = err
		c.result = result
	}
}

func setupBridge(t *testing.T, opts bridge.Options) (*bridge.Bridge, *MockCollaborator) {
	t.Helper()
	collab := newMockCollaborator()
	b := bridge.New(collab, opts, newTestLogger())
	t.Cleanup(b.Close)
	return b, collab
}
