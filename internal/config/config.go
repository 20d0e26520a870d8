// Package config holds the viper defaults and a typed snapshot of the
// settings the resolver needs.
package config

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Settings is a snapshot of the configuration taken at startup.
type Settings struct {
	// Variant names the provider preset ("scrape", "googlebooks", "openlibrary").
	Variant string
	// Providers overrides the preset's primary providers when non-empty.
	Providers []string
	// Enrichers overrides the preset's secondary providers when non-empty.
	Enrichers []string

	Cache CacheSettings

	// HTTPTimeout bounds every outbound provider request.
	HTTPTimeout time.Duration

	GoogleBooksAPIKey string
	ISBNdbAPIKey      string

	// ServerAddr is the listen address of the HTTP surface.
	ServerAddr string
	LogLevel   string
}

// CacheSettings selects and configures the cache backend.
type CacheSettings struct {
	Backend       string
	DBFile        string
	Collection    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// SetDefaults registers the default value of every known key.
func SetDefaults() {
	viper.SetDefault("pipeline.variant", "openlibrary")
	viper.SetDefault("pipeline.providers", []string{})
	viper.SetDefault("pipeline.enrichers", []string{})

	viper.SetDefault("cache.backend", "sqlite")
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.collection", "isbn_query_cache")
	viper.SetDefault("cache.redis.addr", "localhost:6379")
	viper.SetDefault("cache.redis.password", "")
	viper.SetDefault("cache.redis.db", 0)

	viper.SetDefault("http.timeout", "10s")
	viper.SetDefault("server.addr", ":8000")
	viper.SetDefault("log.level", "info")
}

// BindEnv binds the environment variables that carry credentials.
func BindEnv() {
	bindings := map[string]string{
		"googlebooks.api_key":  "GOOGLE_BOOKS_API_KEY",
		"isbndb.api_key":       "ISBNDB_API_KEY",
		"cache.redis.addr":     "REDIS_ADDR",
		"cache.redis.password": "REDIS_PASSWORD",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			slog.Error("Failed to bind environment variable", "key", key, "env", env, "error", err)
		}
	}
}

// Load reads the current viper state into Settings.
func Load() Settings {
	timeout, err := time.ParseDuration(viper.GetString("http.timeout"))
	if err != nil || timeout <= 0 {
		slog.Warn("Invalid HTTP timeout, using default", "timeout", viper.GetString("http.timeout"), "error", err)
		timeout = 10 * time.Second
	}

	return Settings{
		Variant:   viper.GetString("pipeline.variant"),
		Providers: viper.GetStringSlice("pipeline.providers"),
		Enrichers: viper.GetStringSlice("pipeline.enrichers"),
		Cache: CacheSettings{
			Backend:       viper.GetString("cache.backend"),
			DBFile:        viper.GetString("cache.dbfile"),
			Collection:    viper.GetString("cache.collection"),
			RedisAddr:     viper.GetString("cache.redis.addr"),
			RedisPassword: viper.GetString("cache.redis.password"),
			RedisDB:       viper.GetInt("cache.redis.db"),
		},
		HTTPTimeout:       timeout,
		GoogleBooksAPIKey: viper.GetString("googlebooks.api_key"),
		ISBNdbAPIKey:      viper.GetString("isbndb.api_key"),
		ServerAddr:        viper.GetString("server.addr"),
		LogLevel:          viper.GetString("log.level"),
	}
}
