package cmd

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/coelho/internal/book"
	"github.com/lepinkainen/coelho/internal/cache"
	"github.com/lepinkainen/coelho/internal/config"
	"github.com/lepinkainen/coelho/internal/resolver"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

var (
	// buildPipeline constructs the providers and enrichers; tests swap in fakes.
	buildPipeline = resolver.Build
	stdout        io.Writer = os.Stdout
)

// CLI represents the complete command structure for the coelho application
type CLI struct {
	// Global flags
	Config   string `help:"Path to YAML config file (default ./config.yaml)" type:"path"`
	LogLevel string `help:"Log level: debug, info, warn, error"`
	Variant  string `help:"Provider variant: scrape, googlebooks, openlibrary"`

	// Cache flags
	CacheBackend string `help:"Cache backend: sqlite, redis, memory"`
	CacheDBFile  string `help:"Path to cache SQLite database file"`
	RedisAddr    string `help:"Redis address for the redis cache backend"`

	Lookup LookupCmd `cmd:"" help:"Resolve one ISBN and print the result"`
	Serve  ServeCmd  `cmd:"" help:"Serve ISBN lookups over HTTP"`
	Cache  CacheCmd  `cmd:"" help:"Inspect the resolution cache"`
}

// CacheCmd groups the cache subcommands
type CacheCmd struct {
	Show  cache.ShowCacheCmd  `cmd:"" help:"Print the cached record for an ISBN"`
	Count cache.CountCacheCmd `cmd:"" help:"Print the number of cached records"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging("info")

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("coelho"),
		kong.Description("Resolve ISBNs into canonical book records."),
		kong.UsageOnError(),
	)

	initConfig(cli.Config)
	updateGlobalConfig(&cli)
	initLogging(viper.GetString("log.level"))

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig(path string) {
	config.SetDefaults()

	viper.AutomaticEnv()
	config.BindEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			return
		}
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}
}

// updateGlobalConfig applies flags that were given on top of the config file.
func updateGlobalConfig(cli *CLI) {
	overrides := map[string]string{
		"log.level":        cli.LogLevel,
		"pipeline.variant": cli.Variant,
		"cache.backend":    cli.CacheBackend,
		"cache.dbfile":     cli.CacheDBFile,
		"cache.redis.addr": cli.RedisAddr,
	}
	for key, value := range overrides {
		if value != "" {
			viper.Set(key, value)
		}
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func initLogging(level string) {
	// Logs go to stderr so lookup output on stdout stays machine readable
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: parseLevel(level),
	})

	slog.SetDefault(slog.New(handler))
}

// newResolver builds the resolver and its cache from the current settings.
// The returned gateway must be closed by the caller.
func newResolver(settings config.Settings) (*resolver.Resolver, *cache.Gateway, error) {
	primaries, enrichers, err := buildPipeline(settings)
	if err != nil {
		return nil, nil, err
	}

	backend, err := cache.Open(settings.Cache)
	if err != nil {
		return nil, nil, err
	}
	gateway := cache.NewGateway(backend)

	return resolver.New(gateway, primaries, enrichers), gateway, nil
}

func closeGateway(gateway *cache.Gateway) {
	if err := gateway.Close(); err != nil {
		slog.Warn("Failed to close cache", "error", err)
	}
}

// envelope is the success document printed by lookup and served over HTTP.
type envelope struct {
	OK     bool         `json:"ok" yaml:"ok"`
	Cached bool         `json:"cached" yaml:"cached"`
	Result *book.Record `json:"result" yaml:"result"`
}
