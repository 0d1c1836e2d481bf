package shared

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore persists serialized principal snapshots keyed by session ID.
// Get returns (nil, nil) when no snapshot exists; Clear on a missing key is
// a no-op.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
	Set(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps snapshots in Redis with a TTL.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
}

// NewRedisSessionStore constructs a Redis-backed session store.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client, prefix: "session:"}
}

func (s *RedisSessionStore) key(id string) string {
	return s.prefix + id
}

// Get fetches a snapshot, (nil, nil) when absent.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// Set stores a snapshot, replacing any prior one for the session.
func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(sessionID), payload, ttl).Err()
}

// Clear removes a snapshot. Missing keys are not an error.
func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}

// MemorySessionStore is an in-process store for tests.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemorySessionStore constructs an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string][]byte)}
}

// Get fetches a snapshot, (nil, nil) when absent.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.entries[sessionID]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

// Set stores a snapshot. TTL is ignored in memory.
func (s *MemorySessionStore) Set(ctx context.Context, sessionID string, payload []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.entries[sessionID] = buf
	return nil
}

// Clear removes a snapshot.
func (s *MemorySessionStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}

var (
	_ SessionStore = (*RedisSessionStore)(nil)
	_ SessionStore = (*MemorySessionStore)(nil)
)
