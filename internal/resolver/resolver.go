// Package resolver turns an ISBN into a canonical book record.
//
// A resolution checks the cache, asks the primary providers in order until
// one has usable data, runs every enricher on top of it, assembles the record
// and writes it back to the cache.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/coelho/internal/book"
)

// Gateway is the cache the resolver reads from and writes to.
// Lookup never fails; Store errors are surfaced to the caller.
type Gateway interface {
	Lookup(ctx context.Context, isbn string) (*book.Record, bool)
	Store(ctx context.Context, isbn string, record *book.Record) error
}

// Resolution is a resolved record and whether it came from the cache.
type Resolution struct {
	Record *book.Record
	Cached bool
}

// Resolver runs the resolution pipeline. It holds no per-request state and
// is safe for concurrent use.
type Resolver struct {
	gateway   Gateway
	providers []book.Provider
	enrichers []book.Enricher
}

func New(gateway Gateway, providers []book.Provider, enrichers []book.Enricher) *Resolver {
	return &Resolver{
		gateway:   gateway,
		providers: providers,
		enrichers: enrichers,
	}
}

// Resolve returns the record for isbn. On a cache write failure both the
// Resolution and a KindCacheWrite error are returned.
func (r *Resolver) Resolve(ctx context.Context, isbn string) (*Resolution, error) {
	normalized := book.NormalizeISBN(isbn)
	if !book.ValidISBN(normalized) {
		return nil, r.fail(&Error{
			Kind: KindInvalidInput,
			Step: stepValidate,
			Err:  fmt.Errorf("%w: %q", book.ErrInvalidISBN, isbn),
		})
	}

	if record, ok := r.gateway.Lookup(ctx, normalized); ok {
		Resolutions.WithLabelValues("cached").Inc()
		slog.Info("Resolved from cache", "isbn", normalized)
		return &Resolution{Record: record, Cached: true}, nil
	}

	primary, err := r.lookupPrimary(ctx, normalized)
	if err != nil {
		return nil, r.fail(err)
	}

	record := assemble(normalized, primary, r.enrich(ctx, normalized, primary))

	if err := r.gateway.Store(ctx, normalized, record); err != nil {
		slog.Warn("Failed to cache resolution", "isbn", normalized, "error", err)
		return &Resolution{Record: record}, r.fail(&Error{Kind: KindCacheWrite, Step: stepCacheWrite, Err: err})
	}

	Resolutions.WithLabelValues("resolved").Inc()
	slog.Info("Resolved", "isbn", normalized, "title", record.Title)
	return &Resolution{Record: record}, nil
}

func (r *Resolver) fail(err *Error) error {
	Resolutions.WithLabelValues(outcomeLabel(err.Kind)).Inc()
	return err
}

// lookupPrimary asks each provider in order and returns the first usable result.
func (r *Resolver) lookupPrimary(ctx context.Context, isbn string) (*book.Result, *Error) {
	var lastErr *Error
	step := stepQuery("providers")

	for _, p := range r.providers {
		step = stepQuery(p.Name())

		result, err := p.Lookup(ctx, isbn)
		if err != nil {
			ProviderRequests.WithLabelValues(p.Name(), "error").Inc()
			slog.Warn("Provider lookup failed", "provider", p.Name(), "isbn", isbn, "error", err)
			lastErr = &Error{Kind: KindProvider, Step: step, Err: err}
			continue
		}
		if !result.Usable() {
			ProviderRequests.WithLabelValues(p.Name(), "empty").Inc()
			slog.Debug("Provider had no usable data", "provider", p.Name(), "isbn", isbn)
			continue
		}

		ProviderRequests.WithLabelValues(p.Name(), "found").Inc()
		return result, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &Error{Kind: KindNotFound, Step: step, Err: book.ErrBookNotFound}
}

// enrich runs every enricher once. Failures only cost the enrichment.
func (r *Resolver) enrich(ctx context.Context, isbn string, primary *book.Result) []*book.Enrichment {
	enrichments := make([]*book.Enrichment, 0, len(r.enrichers))

	for _, e := range r.enrichers {
		enrichment, err := e.Enrich(ctx, isbn, primary)
		switch {
		case err != nil:
			ProviderRequests.WithLabelValues(e.Name(), "error").Inc()
			slog.Debug("Enrichment skipped", "enricher", e.Name(), "isbn", isbn, "error", err)
		case enrichment == nil:
			ProviderRequests.WithLabelValues(e.Name(), "empty").Inc()
			slog.Debug("Enrichment had no data", "enricher", e.Name(), "isbn", isbn)
		default:
			ProviderRequests.WithLabelValues(e.Name(), "found").Inc()
			enrichments = append(enrichments, enrichment)
		}
	}

	return enrichments
}
