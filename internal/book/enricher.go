// Package book holds the canonical book record and the capability interfaces
// implemented by the external metadata providers.
package book

import (
	"context"
	"strings"
)

// Provider fetches basic book information (title, authors, cover) for an ISBN.
// Each implementation handles its own request building and transforms the
// provider-specific response into a Result.
type Provider interface {
	// Name returns the human-readable name of the source (e.g., "OpenLibrary").
	Name() string

	// Lookup retrieves book information using the provided ISBN.
	// Returns nil, nil if the provider reports zero results.
	// Returns nil, error for actual errors (network issues, bad payloads, etc.)
	Lookup(ctx context.Context, isbn string) (*Result, error)
}

// Enricher adds optional data (classification, subjects) on top of the result
// of a Provider. Enrichment is best effort.
type Enricher interface {
	// Name returns the human-readable name of the source.
	Name() string

	// Enrich looks up secondary data for isbn. primary is the result the
	// pipeline already holds and may carry lookup keys such as an LCCN.
	// Returns nil, nil when the source has nothing usable.
	Enrich(ctx context.Context, isbn string, primary *Result) (*Enrichment, error)
}

// CoverLinks holds the image candidates a provider exposes.
type CoverLinks struct {
	// Preview is a front cover preview link, preferred when present.
	Preview string

	// Thumbnail is a generic, usually low resolution, image link.
	Thumbnail string
}

// Result contains book metadata extracted from a single provider.
// It is consumed immediately by the pipeline and never persisted.
type Result struct {
	// Title is the main title of the book.
	Title string

	// Authors are the raw author names as reported by the source.
	Authors []string

	// Cover holds the image candidates.
	Cover CoverLinks

	// Subjects are topic/category tags.
	Subjects []string

	// LCCN is the Library of Congress Control Number, when the source has one.
	LCCN string

	// PublishDate is the publication date (format varies by source).
	PublishDate string

	// Binding is the format of the edition (hardcover, paperback, ...).
	Binding string
}

// Usable reports whether the result carries the required title and author.
func (r *Result) Usable() bool {
	if r == nil {
		return false
	}
	return strings.TrimSpace(r.Title) != "" && FormatAuthors(r.Authors) != ""
}

// Enrichment is the output of an Enricher.
type Enrichment struct {
	// Classification is set when a classification table was found.
	Classification *Classification

	// Subjects replace the primary subjects when non-empty.
	Subjects []string
}
