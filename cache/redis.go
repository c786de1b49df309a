package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisBackend implements Backend over a Redis connection.
type redisBackend struct {
	client *redis.Client
}

// NewRedisBackend connects to Redis and returns a Backend over it.
// The connection is verified with a ping so a misconfigured address
// surfaces at startup instead of as silent misses.
func NewRedisBackend(addr, password string, db int) (Backend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &redisBackend{client: client}, nil
}

func (b *redisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := b.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (b *redisBackend) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

func (b *redisBackend) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.client.Del(ctx, keys...).Err()
}

// DelPattern scans for keys matching the glob pattern and deletes them
// in batches. SCAN is cursor-based, so keys written concurrently may or
// may not be seen; that only costs an extra miss, never a stale hit,
// because mutations purge after committing.
func (b *redisBackend) DelPattern(ctx context.Context, pattern string) error {
	iter := b.client.Scan(ctx, 0, pattern, 100).Iterator()

	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 {
			if err := b.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return b.client.Del(ctx, batch...).Err()
	}
	return nil
}
