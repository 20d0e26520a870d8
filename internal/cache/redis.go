package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores records as plain string values under "{collection}:{isbn}".
// Entries never expire.
type RedisBackend struct {
	redis  *redis.Client
	prefix string
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client, collection string) *RedisBackend {
	if client == nil {
		panic("redis client must not be nil")
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &RedisBackend{
		redis:  client,
		prefix: collection,
	}
}

func (r *RedisBackend) key(isbn string) string {
	return r.prefix + ":" + isbn
}

// Get reads the value stored for key. redis.Nil is reported as a miss.
func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.redis.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set writes the value without expiry.
func (r *RedisBackend) Set(ctx context.Context, key string, data []byte) error {
	if err := r.redis.Set(ctx, r.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Count walks the collection's keys with SCAN.
func (r *RedisBackend) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		n      int
	)
	for {
		keys, next, err := r.redis.Scan(ctx, cursor, r.prefix+":*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("redis scan: %w", err)
		}
		n += len(keys)
		cursor = next
		if cursor == 0 {
			return n, nil
		}
	}
}

// Close closes the underlying client.
func (r *RedisBackend) Close() error {
	return r.redis.Close()
}
