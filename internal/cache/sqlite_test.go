package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/lepinkainen/coelho/internal/testutil"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) *CacheDB {
	t.Helper()

	env := testutil.NewTestEnv(t)
	db, err := NewCacheDB(env.Path("test_cache.db"), "test_cache")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestCacheDBGetMissing(t *testing.T) {
	db := setupTestCache(t)

	data, found, err := db.Get(context.Background(), "9780000000000")
	require.NoError(t, err)
	require.False(t, found)
	require.Nil(t, data)
}

func TestCacheDBSetAndGet(t *testing.T) {
	db := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "9780441569595", []byte(`{"title":"Neuromancer"}`)))

	data, found, err := db.Get(ctx, "9780441569595")
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `{"title":"Neuromancer"}`, string(data))
}

func TestCacheDBSetReplaces(t *testing.T) {
	db := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "isbn", []byte("first")))
	require.NoError(t, db.Set(ctx, "isbn", []byte("second")))

	data, found, err := db.Get(ctx, "isbn")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "second", string(data))

	n, err := db.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestCacheDBPersistsAcrossReopen(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("persist.db")
	ctx := context.Background()

	db, err := NewCacheDB(path, "")
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, "isbn", []byte("value")))
	require.NoError(t, db.Close())

	reopened, err := NewCacheDB(path, "")
	require.NoError(t, err)
	defer reopened.Close()

	data, found, err := reopened.Get(ctx, "isbn")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "value", string(data))
}

func TestNewCacheDBRejectsInvalidCollection(t *testing.T) {
	env := testutil.NewTestEnv(t)

	for _, name := range []string{"drop table;", "1cache", "cache-name", "a b"} {
		_, err := NewCacheDB(env.Path("x.db"), name)
		require.Error(t, err, name)
	}
}

func TestCacheDBConcurrentAccess(t *testing.T) {
	db := setupTestCache(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			errs <- db.Set(ctx, key, []byte(key))
			_, _, err := db.Get(ctx, key)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := db.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, n)
}
