package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryBackend is an in-process Backend with per-entry TTL. Used in
// tests and in deployments that run without Redis.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]memoryEntry)}
}

func (b *MemoryBackend) Get(ctx context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	entry, ok := b.entries[key]
	b.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if time.Now().After(entry.expiresAt) {
		b.mu.Lock()
		delete(b.entries, key)
		b.mu.Unlock()
		return "", false, nil
	}
	return entry.value, true, nil
}

func (b *MemoryBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	b.mu.Lock()
	b.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) Del(ctx context.Context, keys ...string) error {
	b.mu.Lock()
	for _, key := range keys {
		delete(b.entries, key)
	}
	b.mu.Unlock()
	return nil
}

func (b *MemoryBackend) DelPattern(ctx context.Context, pattern string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key := range b.entries {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return err
		}
		if matched {
			delete(b.entries, key)
		}
	}
	return nil
}

// Sweep drops expired entries. Called periodically by the scheduler
// when this backend serves production traffic.
func (b *MemoryBackend) Sweep() {
	now := time.Now()
	b.mu.Lock()
	for key, entry := range b.entries {
		if now.After(entry.expiresAt) {
			delete(b.entries, key)
		}
	}
	b.mu.Unlock()
}

// Len reports the number of live entries, expired or not.
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
