// Package refresh correlates the platform's asynchronous feed-update
// signal back to the requests waiting on it.
package refresh

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tinywideclouds/go-engage-bridge/pkg/feed"
)

// Outcome is the resolution delivered to a single waiter.
type Outcome struct {
	Succeeded bool
}

// Correlator fans one stream of feed-update signals out to every request
// currently awaiting the next one. Each request holds its own waiter,
// keyed by a UUID, so concurrent requests queue instead of overwriting
// each other. A waiter is removed before its outcome is delivered, which
// means a later unrelated signal can never fire it again.
type Correlator struct {
	logger *slog.Logger

	mu      sync.Mutex
	waiters map[string]chan Outcome

	done      chan struct{}
	closeOnce sync.Once
}

// NewCorrelator starts a single consumer of the updates channel. It runs
// until Close is called or the channel is closed.
func NewCorrelator(updates <-chan feed.Update, logger *slog.Logger) *Correlator {
	c := &Correlator{
		logger:  logger.With("component", "RefreshCorrelator"),
		waiters: make(map[string]chan Outcome),
		done:    make(chan struct{}),
	}
	go c.consume(updates)
	return c
}

func (c *Correlator) consume(updates <-chan feed.Update) {
	for {
		select {
		case <-c.done:
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			c.broadcast(Outcome{Succeeded: u.Succeeded})
		}
	}
}

// Await registers a waiter for the next feed-update signal. The returned
// channel receives exactly one Outcome and is then closed. The id cancels
// the waiter if the request is abandoned before the signal arrives.
func (c *Correlator) Await() (string, <-chan Outcome) {
	id := uuid.NewString()
	ch := make(chan Outcome, 1)

	c.mu.Lock()
	c.waiters[id] = ch
	c.mu.Unlock()

	return id, ch
}

// Cancel drops a waiter that no longer wants its outcome. Cancelling an
// already-resolved or unknown id is a no-op.
func (c *Correlator) Cancel(id string) {
	c.mu.Lock()
	delete(c.waiters, id)
	c.mu.Unlock()
}

// Pending reports the number of requests awaiting the next signal.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

func (c *Correlator) broadcast(o Outcome) {
	c.mu.Lock()
	pending := c.waiters
	c.waiters = make(map[string]chan Outcome)
	c.mu.Unlock()

	if len(pending) == 0 {
		c.logger.Debug("Feed update arrived with no pending requests")
		return
	}
	for _, ch := range pending {
		ch <- o
		close(ch)
	}
}

// Close stops the consumer. Waiters still pending have their channels
// closed without an outcome.
func (c *Correlator) Close() {
	c.closeOnce.Do(func() {
		close(c.done)

		c.mu.Lock()
		pending := c.waiters
		c.waiters = make(map[string]chan Outcome)
		c.mu.Unlock()

		for _, ch := range pending {
			close(ch)
		}
	})
}
