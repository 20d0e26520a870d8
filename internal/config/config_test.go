package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	s := Load()
	require.Equal(t, "openlibrary", s.Variant)
	require.Empty(t, s.Providers)
	require.Empty(t, s.Enrichers)
	require.Equal(t, "sqlite", s.Cache.Backend)
	require.Equal(t, "./cache.db", s.Cache.DBFile)
	require.Equal(t, "isbn_query_cache", s.Cache.Collection)
	require.Equal(t, "localhost:6379", s.Cache.RedisAddr)
	require.Equal(t, 10*time.Second, s.HTTPTimeout)
	require.Equal(t, ":8000", s.ServerAddr)
	require.Equal(t, "info", s.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	resetViper(t)
	SetDefaults()

	viper.Set("pipeline.variant", "scrape")
	viper.Set("pipeline.providers", []string{"isbndb", "googlebooks"})
	viper.Set("cache.backend", "redis")
	viper.Set("cache.redis.db", 3)
	viper.Set("http.timeout", "3s")
	viper.Set("isbndb.api_key", "key")

	s := Load()
	require.Equal(t, "scrape", s.Variant)
	require.Equal(t, []string{"isbndb", "googlebooks"}, s.Providers)
	require.Equal(t, "redis", s.Cache.Backend)
	require.Equal(t, 3, s.Cache.RedisDB)
	require.Equal(t, 3*time.Second, s.HTTPTimeout)
	require.Equal(t, "key", s.ISBNdbAPIKey)
}

func TestLoadInvalidTimeoutFallsBack(t *testing.T) {
	resetViper(t)
	SetDefaults()
	viper.Set("http.timeout", "soon")

	require.Equal(t, 10*time.Second, Load().HTTPTimeout)
}

func TestBindEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("ISBNDB_API_KEY", "from-env")
	BindEnv()

	require.Equal(t, "from-env", Load().ISBNdbAPIKey)
}
