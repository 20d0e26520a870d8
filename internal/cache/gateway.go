package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/coelho/internal/book"
)

// ErrIncompleteRecord is returned by Store for a record without title or author.
var ErrIncompleteRecord = errors.New("refusing to cache incomplete record")

// ErrCountUnsupported is returned by Count when the backend cannot count entries.
var ErrCountUnsupported = errors.New("cache backend cannot count entries")

// Gateway reads and writes book records through a Backend.
type Gateway struct {
	backend Backend
}

func NewGateway(backend Backend) *Gateway {
	return &Gateway{backend: backend}
}

// Lookup returns the cached record for isbn. Backend failures and entries
// that do not decode into a complete record are reported as a miss.
func (g *Gateway) Lookup(ctx context.Context, isbn string) (*book.Record, bool) {
	data, found, err := g.backend.Get(ctx, isbn)
	if err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		slog.Warn("Cache lookup failed, treating as miss", "isbn", isbn, "error", err)
		return nil, false
	}
	if !found {
		CacheMisses.Inc()
		slog.Debug("Cache miss", "isbn", isbn)
		return nil, false
	}

	var record book.Record
	if err := json.Unmarshal(data, &record); err != nil || !record.Complete() {
		CacheErrors.WithLabelValues("decode").Inc()
		slog.Warn("Ignoring malformed cache entry", "isbn", isbn, "error", err)
		return nil, false
	}
	if record.Subjects == nil {
		record.Subjects = []string{}
	}

	CacheHits.Inc()
	slog.Debug("Cache hit", "isbn", isbn)
	return &record, true
}

// Store writes record under isbn, overwriting any previous entry.
func (g *Gateway) Store(ctx context.Context, isbn string, record *book.Record) error {
	if !record.Complete() {
		return ErrIncompleteRecord
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if err := g.backend.Set(ctx, isbn, data); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return err
	}

	slog.Debug("Record cached", "isbn", isbn)
	return nil
}

// Count reports the number of cached records.
func (g *Gateway) Count(ctx context.Context) (int, error) {
	counter, ok := g.backend.(Counter)
	if !ok {
		return 0, ErrCountUnsupported
	}
	return counter.Count(ctx)
}

// Close releases the backend.
func (g *Gateway) Close() error {
	return g.backend.Close()
}
