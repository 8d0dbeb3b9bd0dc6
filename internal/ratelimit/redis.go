package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter backs the limiter with a shared Redis instance so quotas
// hold across replicas.
type RedisCounter struct {
	rdb *redis.Client
}

func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

// Incr atomically increments key and attaches ttl only on first creation
// (EXPIRE NX), so the window never slides. INCR/EXPIRE/PTTL run in one
// transactional pipeline; there is no read-then-write to race.
func (s *RedisCounter) Incr(ctx context.Context, key string, ttl time.Duration) (int64, time.Duration, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, ttl)
	pttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("incrementing counter %q: %w", key, err)
	}

	remaining := pttl.Val()
	if remaining < 0 {
		// key existed without a TTL (or PTTL raced its creation)
		remaining = ttl
	}
	return incr.Val(), remaining, nil
}
