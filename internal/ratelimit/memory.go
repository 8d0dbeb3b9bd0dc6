package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryCounter is an in-process counter store for tests and single-node
// dev deployments. Counts are lost on restart and not shared across
// replicas; production deployments should use RedisCounter.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		entries: make(map[string]*memoryEntry),
	}
}

// Incr increments key under a single lock, recreating the entry when the
// previous window has expired. The TTL is fixed at creation.
func (s *MemoryCounter) Incr(_ context.Context, key string, ttl time.Duration) (int64, time.Duration, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || !ent.expiresAt.After(now) {
		ent = &memoryEntry{expiresAt: now.Add(ttl)}
		s.entries[key] = ent
	}
	ent.count++

	return ent.count, ent.expiresAt.Sub(now), nil
}
