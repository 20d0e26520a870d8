// Package cache stores resolved book records keyed by normalized ISBN.
//
// A Backend is a plain byte store. The Gateway on top of it owns the record
// encoding and the cache-aside semantics: reads fail soft, writes fail hard.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/lepinkainen/coelho/internal/config"
	"github.com/redis/go-redis/v9"
)

// Backend is a key/value store for encoded records.
type Backend interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key, replacing any previous value.
	Set(ctx context.Context, key string, data []byte) error
	Close() error
}

// Counter is implemented by backends that can report how many records they hold.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// ErrUnknownBackend is returned by Open for an unrecognised backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Open builds the backend selected by the cache settings.
func Open(settings config.CacheSettings) (Backend, error) {
	switch settings.Backend {
	case "", "sqlite":
		return NewCacheDB(settings.DBFile, settings.Collection)
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		})
		return NewRedisBackend(client, settings.Collection), nil
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, settings.Backend)
	}
}
