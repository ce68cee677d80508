package snapshot

import (
	"context"
	"sync"
)

// MemoryStore is the single-instance Store. It is also the store unit
// tests run against.
type MemoryStore struct {
	mu    sync.RWMutex
	feeds map[string][]Card
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{feeds: make(map[string][]Card)}
}

func (s *MemoryStore) Save(_ context.Context, userID string, cards []Card) error {
	copied := make([]Card, len(cards))
	copy(copied, cards)

	s.mu.Lock()
	s.feeds[userID] = copied
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, userID string) ([]Card, error) {
	s.mu.RLock()
	stored := s.feeds[userID]
	s.mu.RUnlock()

	copied := make([]Card, len(stored))
	copy(copied, stored)
	return copied, nil
}
