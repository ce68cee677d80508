package refresh_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinywideclouds/go-engage-bridge/internal/refresh"
	"github.com/tinywideclouds/go-engage-bridge/pkg/feed"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func receiveOutcome(t *testing.T, ch <-chan refresh.Outcome) (refresh.Outcome, bool) {
	t.Helper()
	select {
	case o, ok := <-ch:
		return o, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for outcome")
		return refresh.Outcome{}, false
	}
}

func TestCorrelator_ResolvesWaiterOnNextSignal(t *testing.T) {
	updates := make(chan feed.Update, 1)
	c := refresh.NewCorrelator(updates, newTestLogger())
	defer c.Close()

	_, ch := c.Await()
	require.Equal(t, 1, c.Pending())

	updates <- feed.Update{Succeeded: true}

	o, ok := receiveOutcome(t, ch)
	require.True(t, ok)
	assert.True(t, o.Succeeded)
	assert.Equal(t, 0, c.Pending())
}

func TestCorrelator_QueuesConcurrentWaiters(t *testing.T) {
	updates := make(chan feed.Update, 1)
	c := refresh.NewCorrelator(updates, newTestLogger())
	defer c.Close()

	_, first := c.Await()
	_, second := c.Await()
	require.Equal(t, 2, c.Pending())

	updates <- feed.Update{Succeeded: false}

	o1, ok1 := receiveOutcome(t, first)
	o2, ok2 := receiveOutcome(t, second)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.False(t, o1.Succeeded)
	assert.False(t, o2.Succeeded)
}

func TestCorrelator_ResolvedWaiterNeverFiresTwice(t *testing.T) {
	updates := make(chan feed.Update, 2)
	c := refresh.NewCorrelator(updates, newTestLogger())
	defer c.Close()

	_, ch := c.Await()
	updates <- feed.Update{Succeeded: true}

	_, ok := receiveOutcome(t, ch)
	require.True(t, ok)

	// A later unrelated signal must find no trace of the resolved waiter.
	updates <- feed.Update{Succeeded: true}

	// The channel was closed after its single delivery; a second receive
	// reports closure, not another outcome.
	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, c.Pending())
}

func TestCorrelator_CancelDropsWaiter(t *testing.T) {
	updates := make(chan feed.Update, 1)
	c := refresh.NewCorrelator(updates, newTestLogger())
	defer c.Close()

	id, ch := c.Await()
	c.Cancel(id)
	require.Equal(t, 0, c.Pending())

	updates <- feed.Update{Succeeded: true}

	select {
	case _, open := <-ch:
		// Only acceptable observation is that nothing was delivered.
		assert.False(t, open)
	case <-time.After(100 * time.Millisecond):
		// No delivery at all is fine too: the waiter was dropped.
	}
}

func TestCorrelator_CloseClosesPendingWaiters(t *testing.T) {
	updates := make(chan feed.Update)
	c := refresh.NewCorrelator(updates, newTestLogger())

	_, ch := c.Await()
	c.Close()

	_, open := receiveOutcomeOrClosed(t, ch)
	assert.False(t, open)

	// Close is idempotent.
	c.Close()
}

func receiveOutcomeOrClosed(t *testing.T, ch <-chan refresh.Outcome) (refresh.Outcome, bool) {
	t.Helper()
	select {
	case o, ok := <-ch:
		return o, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
		return refresh.Outcome{}, false
	}
}
