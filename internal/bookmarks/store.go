// Package bookmarks keeps the per-user set of bookmarked items and exposes
// it to the catalog through an Overlay.
package bookmarks

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store persists bookmark sets scoped by user and item kind.
type Store interface {
	List(ctx context.Context, userID, kind string) ([]string, error)
	Add(ctx context.Context, userID, kind, itemID string) error
	Remove(ctx context.Context, userID, kind, itemID string) error
}

const keyPrefix = "resourcehub:bookmarks:"

// Key returns the Redis set holding userID's bookmarks of kind.
func Key(userID, kind string) string {
	return keyPrefix + userID + ":" + kind
}

type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) List(ctx context.Context, userID, kind string) ([]string, error) {
	ids, err := s.client.SMembers(ctx, Key(userID, kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return ids, nil
}

func (s *RedisStore) Add(ctx context.Context, userID, kind, itemID string) error {
	if err := s.client.SAdd(ctx, Key(userID, kind), itemID).Err(); err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, userID, kind, itemID string) error {
	if err := s.client.SRem(ctx, Key(userID, kind), itemID).Err(); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}
	return nil
}

// MemoryStore is the process-local Store used when Redis is not configured.
type MemoryStore struct {
	mu   sync.Mutex
	sets map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]map[string]struct{})}
}

func (s *MemoryStore) List(_ context.Context, userID, kind string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.sets[Key(userID, kind)]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) Add(_ context.Context, userID, kind, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := Key(userID, kind)
	if s.sets[key] == nil {
		s.sets[key] = make(map[string]struct{})
	}
	s.sets[key][itemID] = struct{}{}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, userID, kind, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sets[Key(userID, kind)], itemID)
	return nil
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
