package cache

import (
	"bytes"
	"context"
	"testing"

	"github.com/lepinkainen/coelho/internal/book"
	"github.com/lepinkainen/coelho/internal/testutil"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := output
	output = &buf
	t.Cleanup(func() { output = old })
	return &buf
}

func TestShowCacheCmd(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t)
	dbPath := testutil.SetupTestCache(t, env)

	db, err := NewCacheDB(dbPath, DefaultCollection)
	require.NoError(t, err)
	require.NoError(t, NewGateway(db).Store(context.Background(), "9780441569595", sampleRecord()))
	require.NoError(t, db.Close())

	buf := captureOutput(t)
	require.NoError(t, (&ShowCacheCmd{ISBN: "978-0-441-56959-5"}).Run())
	require.Contains(t, buf.String(), `"title": "Neuromancer"`)
}

func TestShowCacheCmdMissing(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t)
	testutil.SetupTestCache(t, env)

	captureOutput(t)
	err := (&ShowCacheCmd{ISBN: "9780000000000"}).Run()
	require.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestCountCacheCmd(t *testing.T) {
	env := testutil.NewTestEnv(t)
	testutil.SetTestConfig(t)
	dbPath := testutil.SetupTestCache(t, env)

	db, err := NewCacheDB(dbPath, DefaultCollection)
	require.NoError(t, err)
	g := NewGateway(db)
	require.NoError(t, g.Store(context.Background(), "9780441569595", sampleRecord()))
	require.NoError(t, g.Store(context.Background(), "9780553293357", sampleRecord()))
	require.NoError(t, db.Close())

	buf := captureOutput(t)
	require.NoError(t, (&CountCacheCmd{}).Run())
	require.Equal(t, "2\n", buf.String())
}

func TestCountCacheCmdUnknownBackend(t *testing.T) {
	testutil.SetTestConfig(t)
	testutil.SetViperValue(t, "cache.backend", "cassandra")

	captureOutput(t)
	err := (&CountCacheCmd{}).Run()
	require.ErrorIs(t, err, ErrUnknownBackend)
}
