package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tinywideclouds/go-engage-bridge/internal/storage/snapshot"
)

// Cache defines the subset of Redis commands the feed store needs.
type Cache interface {
	// Get decodes the value into dest, or returns redis.Nil when absent.
	Get(ctx context.Context, key string, dest any) error
	// Set stores the value with a TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Del removes the key.
	Del(ctx context.Context, key string) error
}

// FeedStore is a snapshot.Store backed by a shared cache. Snapshots expire
// on their TTL; an expired or never-synced feed reads back as empty, which
// matches the mobile SDK's cold-cache behavior.
type FeedStore struct {
	cache Cache
	ttl   time.Duration
}

func NewFeedStore(cache Cache, ttl time.Duration) *FeedStore {
	return &FeedStore{cache: cache, ttl: ttl}
}

func (s *FeedStore) Save(ctx context.Context, userID string, cards []snapshot.Card) error {
	return s.cache.Set(ctx, s.key(userID), cards, s.ttl)
}

func (s *FeedStore) Load(ctx context.Context, userID string) ([]snapshot.Card, error) {
	var cards []snapshot.Card
	err := s.cache.Get(ctx, s.key(userID), &cards)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *FeedStore) key(userID string) string {
	return fmt.Sprintf("engage:feed:%s", userID)
}
