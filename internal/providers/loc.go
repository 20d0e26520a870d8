package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/lepinkainen/coelho/internal/book"
)

const locBaseURL = "https://www.loc.gov"

// LOCSubjects looks up Library of Congress catalog subjects by LCCN.
type LOCSubjects struct {
	source
}

// Compile-time check that LOCSubjects implements book.Enricher.
var _ book.Enricher = (*LOCSubjects)(nil)

// NewLOCSubjects creates a new Library of Congress subject enricher.
func NewLOCSubjects(opts ...Option) *LOCSubjects {
	return &LOCSubjects{source: newSource(locBaseURL, opts)}
}

// Name returns the human-readable name of this enricher.
func (l *LOCSubjects) Name() string {
	return "loc.gov"
}

// locSearchResponse matches the parts of the loc.gov JSON search response we use.
type locSearchResponse struct {
	Search struct {
		Hits int `json:"hits"`
	} `json:"search"`
	Results []struct {
		Subject []string `json:"subject"`
	} `json:"results"`
}

// Enrich searches the catalog for the primary result's LCCN. The subjects of
// the first hit are returned so they replace the primary subjects.
func (l *LOCSubjects) Enrich(ctx context.Context, _ string, primary *book.Result) (*book.Enrichment, error) {
	if primary == nil || primary.LCCN == "" {
		return nil, nil
	}

	query := url.Values{}
	query.Set("q", primary.LCCN)
	query.Set("fo", "json")
	searchURL := fmt.Sprintf("%s/books/?%s", l.baseURL, query.Encode())

	var resp locSearchResponse
	if err := l.getJSON(ctx, searchURL, &resp); err != nil {
		return nil, err
	}

	subjects := locSubjects(&resp)
	if len(subjects) == 0 {
		return nil, nil
	}
	return &book.Enrichment{Subjects: subjects}, nil
}

func locSubjects(resp *locSearchResponse) []string {
	if resp.Search.Hits < 1 || len(resp.Results) == 0 {
		return nil
	}

	subjects := make([]string, 0, len(resp.Results[0].Subject))
	for _, s := range resp.Results[0].Subject {
		if s != "" {
			subjects = append(subjects, s)
		}
	}
	return subjects
}
