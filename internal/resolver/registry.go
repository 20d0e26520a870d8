package resolver

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/lepinkainen/coelho/internal/book"
	"github.com/lepinkainen/coelho/internal/config"
	"github.com/lepinkainen/coelho/internal/providers"
)

// Variant is a named combination of primary providers and enrichers.
type Variant struct {
	Providers []string
	Enrichers []string
}

// DefaultVariant is used when pipeline.variant is empty.
const DefaultVariant = "openlibrary"

var variants = map[string]Variant{
	"scrape":      {Providers: []string{"addall"}, Enrichers: []string{"oclc"}},
	"googlebooks": {Providers: []string{"googlebooks"}, Enrichers: []string{"oclc"}},
	"openlibrary": {Providers: []string{"openlibrary"}, Enrichers: []string{"loc"}},
}

var providerFactories = map[string]func(client *http.Client, s config.Settings) book.Provider{
	"addall": func(client *http.Client, _ config.Settings) book.Provider {
		return providers.NewAddAllProvider(providers.WithHTTPClient(client))
	},
	"googlebooks": func(client *http.Client, s config.Settings) book.Provider {
		return providers.NewGoogleBooksProvider(providers.WithHTTPClient(client), providers.WithAPIKey(s.GoogleBooksAPIKey))
	},
	"openlibrary": func(client *http.Client, _ config.Settings) book.Provider {
		return providers.NewOpenLibraryProvider(providers.WithHTTPClient(client))
	},
	"isbndb": func(client *http.Client, s config.Settings) book.Provider {
		return providers.NewISBNdbProvider(providers.WithHTTPClient(client), providers.WithAPIKey(s.ISBNdbAPIKey))
	},
}

var enricherFactories = map[string]func(client *http.Client, s config.Settings) book.Enricher{
	"oclc": func(client *http.Client, _ config.Settings) book.Enricher {
		return providers.NewOCLCClassifier(providers.WithHTTPClient(client))
	},
	"loc": func(client *http.Client, _ config.Settings) book.Enricher {
		return providers.NewLOCSubjects(providers.WithHTTPClient(client))
	},
}

// Variants returns the known variant names in sorted order.
func Variants() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectVariant resolves the provider and enricher names for the settings.
// Explicit pipeline.providers / pipeline.enrichers lists replace the preset's.
func SelectVariant(s config.Settings) (Variant, error) {
	name := s.Variant
	if name == "" {
		name = DefaultVariant
	}

	preset, ok := variants[name]
	if !ok {
		return Variant{}, fmt.Errorf("unknown pipeline variant %q (known: %s)", name, strings.Join(Variants(), ", "))
	}

	selected := Variant{Providers: preset.Providers, Enrichers: preset.Enrichers}
	if len(s.Providers) > 0 {
		selected.Providers = s.Providers
	}
	if len(s.Enrichers) > 0 {
		selected.Enrichers = s.Enrichers
	}
	return selected, nil
}

// Build constructs the providers and enrichers selected by the settings.
// All of them share one HTTP client bounded by the configured timeout.
func Build(s config.Settings) ([]book.Provider, []book.Enricher, error) {
	variant, err := SelectVariant(s)
	if err != nil {
		return nil, nil, err
	}

	timeout := s.HTTPTimeout
	if timeout <= 0 {
		timeout = providers.DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	primaries := make([]book.Provider, 0, len(variant.Providers))
	for _, name := range variant.Providers {
		factory, ok := providerFactories[name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown provider %q", name)
		}
		primaries = append(primaries, factory(client, s))
	}

	enrichers := make([]book.Enricher, 0, len(variant.Enrichers))
	for _, name := range variant.Enrichers {
		factory, ok := enricherFactories[name]
		if !ok {
			return nil, nil, fmt.Errorf("unknown enricher %q", name)
		}
		enrichers = append(enrichers, factory(client, s))
	}

	return primaries, enrichers, nil
}
