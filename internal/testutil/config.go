package testutil

import (
	"testing"

	"github.com/lepinkainen/coelho/internal/config"
	"github.com/spf13/viper"
)

// SetTestConfig resets viper to the registered defaults with an in-memory
// cache backend. viper is reset again when the test completes.
func SetTestConfig(t *testing.T) {
	t.Helper()

	viper.Reset()
	config.SetDefaults()
	viper.Set("cache.backend", "memory")

	t.Cleanup(viper.Reset)
}

// SetViperValue sets a viper configuration value for the duration of the test.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}

// SetupTestCache points the sqlite cache at a file inside env and returns its path.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	env.MkdirAll("cache")
	dbPath := env.Path("cache", "test-cache.db")

	viper.Set("cache.backend", "sqlite")
	viper.Set("cache.dbfile", dbPath)

	return dbPath
}
