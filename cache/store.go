package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Backend is the raw key/value store behind a Store. Implementations
// must be safe for concurrent use.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// DelPattern removes every key matching the glob pattern. Deleting
	// extra keys is safe; missing one is not.
	DelPattern(ctx context.Context, pattern string) error
}

// Store is a fail-open cache handle. Every operation degrades to a
// no-op when the store is disabled or the backend errors: Get reports
// a miss, writes and deletes are dropped. Callers never need to branch
// on cache failure; the read path falls through to the database.
//
// A Store is built once at startup and passed to its consumers. Its
// enabled state is an explicit field, not a side effect of connecting.
type Store struct {
	backend Backend
	enabled bool
	ttl     time.Duration
}

// New returns a Store over the given backend. ttlSeconds is the
// default entry lifetime used when Set is called with ttlSeconds <= 0.
func New(backend Backend, ttlSeconds int) *Store {
	if ttlSeconds <= 0 {
		ttlSeconds = 3600
	}
	return &Store{
		backend: backend,
		enabled: backend != nil,
		ttl:     time.Duration(ttlSeconds) * time.Second,
	}
}

// Disabled returns a Store where every operation is a no-op.
func Disabled() *Store {
	return &Store{}
}

// Enabled reports whether the store has a live backend.
func (s *Store) Enabled() bool {
	return s != nil && s.enabled
}

// Get returns the cached value for key, or ok=false on miss, disabled
// store, or backend error.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	if !s.Enabled() {
		return "", false
	}
	value, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		return "", false
	}
	return value, ok
}

// Set stores value under key. Best-effort; errors are swallowed.
func (s *Store) Set(ctx context.Context, key, value string, ttlSeconds int) {
	if !s.Enabled() {
		return
	}
	ttl := s.ttl
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	_ = s.backend.Set(ctx, key, value, ttl)
}

// Del removes a single key. Best-effort; errors are swallowed.
func (s *Store) Del(ctx context.Context, key string) {
	if !s.Enabled() {
		return
	}
	_ = s.backend.Del(ctx, key)
}

// DelPattern removes every key matching the glob pattern.
// Best-effort; errors are swallowed.
func (s *Store) DelPattern(ctx context.Context, pattern string) {
	if !s.Enabled() {
		return
	}
	_ = s.backend.DelPattern(ctx, pattern)
}

// GetJSON unmarshals the cached value for key into dest. A corrupt
// entry is treated as a miss.
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	value, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(value), dest); err != nil {
		return false
	}
	return true
}

// SetJSON marshals v and stores it under key.
func (s *Store) SetJSON(ctx context.Context, key string, v interface{}, ttlSeconds int) {
	if !s.Enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.Set(ctx, key, string(data), ttlSeconds)
}
