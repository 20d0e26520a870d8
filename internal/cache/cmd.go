package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lepinkainen/coelho/internal/book"
	"github.com/lepinkainen/coelho/internal/config"
)

// output is where cache subcommands print; tests replace it.
var output io.Writer = os.Stdout

// ShowCacheCmd prints the cached record for an ISBN without consulting any provider.
type ShowCacheCmd struct {
	ISBN string `arg:"" help:"ISBN to look up in the cache" required:""`
}

func (s *ShowCacheCmd) Run() error {
	settings := config.Load()
	isbn := book.NormalizeISBN(s.ISBN)

	slog.Info("Reading cache entry", "isbn", isbn, "backend", settings.Cache.Backend)

	gateway, err := openGateway(settings.Cache)
	if err != nil {
		return err
	}
	defer closeGateway(gateway)

	record, found := gateway.Lookup(context.Background(), isbn)
	if !found {
		return fmt.Errorf("%w: %s is not cached", book.ErrBookNotFound, isbn)
	}

	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}

// CountCacheCmd prints the number of cached records.
type CountCacheCmd struct{}

func (c *CountCacheCmd) Run() error {
	settings := config.Load()

	gateway, err := openGateway(settings.Cache)
	if err != nil {
		return err
	}
	defer closeGateway(gateway)

	n, err := gateway.Count(context.Background())
	if err != nil {
		return fmt.Errorf("failed to count cache entries: %w", err)
	}

	slog.Debug("Counted cache entries", "backend", settings.Cache.Backend, "count", n)
	_, err = fmt.Fprintln(output, n)
	return err
}

func openGateway(settings config.CacheSettings) (*Gateway, error) {
	backend, err := Open(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return NewGateway(backend), nil
}

func closeGateway(gateway *Gateway) {
	if err := gateway.Close(); err != nil {
		slog.Warn("Failed to close cache", "error", err)
	}
}
