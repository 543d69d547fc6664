package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/resourcehub/internal/common"
	"github.com/redis/go-redis/v9"
)

// Handoff is what the chat and quiz pages read for the current session.
type Handoff struct {
	Text string
	Name string
	URL  string
}

// HandoffStore keeps one Handoff per session. Save replaces the previous
// value as a whole; readers never see a mix of two handoffs.
type HandoffStore interface {
	Save(ctx context.Context, sessionID string, h Handoff) error
	Load(ctx context.Context, sessionID string) (Handoff, error)
	Delete(ctx context.Context, sessionID string) error
}

// HandoffKey is the Redis hash holding sessionID's handoff.
func HandoffKey(sessionID string) string {
	return "resourcehub:session:" + sessionID + ":handoff"
}

// RedisHandoffStore writes the three session fields in one MULTI/EXEC.
type RedisHandoffStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisHandoffStore keeps handoffs for ttl; zero keeps them forever.
func NewRedisHandoffStore(client redis.UniversalClient, ttl time.Duration) *RedisHandoffStore {
	return &RedisHandoffStore{client: client, ttl: ttl}
}

func (s *RedisHandoffStore) Save(ctx context.Context, sessionID string, h Handoff) error {
	key := HandoffKey(sessionID)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			common.HandoffContentField, h.Text,
			common.HandoffNameField, h.Name,
			common.HandoffURLField, h.URL,
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save handoff: %w", err)
	}
	return nil
}

func (s *RedisHandoffStore) Load(ctx context.Context, sessionID string) (Handoff, error) {
	fields, err := s.client.HGetAll(ctx, HandoffKey(sessionID)).Result()
	if err != nil {
		return Handoff{}, fmt.Errorf("failed to load handoff: %w", err)
	}
	if len(fields) == 0 {
		return Handoff{}, common.ErrNotFound
	}
	return Handoff{
		Text: fields[common.HandoffContentField],
		Name: fields[common.HandoffNameField],
		URL:  fields[common.HandoffURLField],
	}, nil
}

func (s *RedisHandoffStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, HandoffKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete handoff: %w", err)
	}
	return nil
}

// MemoryHandoffStore keeps handoffs in process memory.
type MemoryHandoffStore struct {
	mu       sync.RWMutex
	sessions map[string]Handoff
}

func NewMemoryHandoffStore() *MemoryHandoffStore {
	return &MemoryHandoffStore{sessions: make(map[string]Handoff)}
}

func (s *MemoryHandoffStore) Save(_ context.Context, sessionID string, h Handoff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = h
	return nil
}

func (s *MemoryHandoffStore) Load(_ context.Context, sessionID string) (Handoff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.sessions[sessionID]
	if !ok {
		return Handoff{}, common.ErrNotFound
	}
	return h, nil
}

func (s *MemoryHandoffStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var (
	_ HandoffStore = (*RedisHandoffStore)(nil)
	_ HandoffStore = (*MemoryHandoffStore)(nil)
)
