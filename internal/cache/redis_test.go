package cache

import (
	"context"
	"testing"
	"time"

	"github.com/lepinkainen/coelho/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func configFor(backend string) config.CacheSettings {
	return config.CacheSettings{Backend: backend, Collection: DefaultCollection}
}

// setupRedis starts a Redis container. The test is skipped when Docker is unavailable.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Redis container not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return redis.NewClient(&redis.Options{Addr: host + ":" + port.Port()})
}

func TestNewRedisBackendPanicsOnNilClient(t *testing.T) {
	require.Panics(t, func() { NewRedisBackend(nil, "") })
}

func TestRedisBackendUnreachableIsGatewayMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	backend := NewRedisBackend(client, DefaultCollection)
	defer backend.Close()

	_, _, err := backend.Get(context.Background(), "isbn")
	require.Error(t, err)

	_, found := NewGateway(backend).Lookup(context.Background(), "isbn")
	require.False(t, found)
}

func TestRedisBackendIntegration(t *testing.T) {
	client := setupRedis(t)
	backend := NewRedisBackend(client, "test_collection")
	defer backend.Close()
	ctx := context.Background()

	_, found, err := backend.Get(ctx, "9780441569595")
	require.NoError(t, err)
	require.False(t, found)

	g := NewGateway(backend)
	require.NoError(t, g.Store(ctx, "9780441569595", sampleRecord()))

	got, found := g.Lookup(ctx, "9780441569595")
	require.True(t, found)
	require.Equal(t, sampleRecord(), got)

	ttl, err := client.TTL(ctx, "test_collection:9780441569595").Result()
	require.NoError(t, err)
	require.Equal(t, time.Duration(-1), ttl, "entries must not expire")

	require.NoError(t, client.Set(ctx, "other_collection:9780441569595", "x", 0).Err())
	n, err := g.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
