package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lepinkainen/coelho/internal/book"
)

const openLibraryBaseURL = "https://openlibrary.org"

// OpenLibraryProvider implements book.Provider for the OpenLibrary books API.
type OpenLibraryProvider struct {
	source
}

// Compile-time check that OpenLibraryProvider implements book.Provider.
var _ book.Provider = (*OpenLibraryProvider)(nil)

// NewOpenLibraryProvider creates a new OpenLibrary provider.
func NewOpenLibraryProvider(opts ...Option) *OpenLibraryProvider {
	return &OpenLibraryProvider{source: newSource(openLibraryBaseURL, opts)}
}

// Name returns the human-readable name of this provider.
func (p *OpenLibraryProvider) Name() string {
	return "OpenLibrary"
}

// openLibraryBookResponse matches the API response structure.
type openLibraryBookResponse struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Authors  []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Cover struct {
		Small  string `json:"small"`
		Medium string `json:"medium"`
		Large  string `json:"large"`
	} `json:"cover"`
	Subjects    []any  `json:"subjects"`
	PublishDate string `json:"publish_date"`
	Identifiers struct {
		LCCN []string `json:"lccn"`
	} `json:"identifiers"`
	PhysicalFormat string `json:"physical_format"`
}

// Lookup fetches book data from OpenLibrary by ISBN.
func (p *OpenLibraryProvider) Lookup(ctx context.Context, isbn string) (*book.Result, error) {
	if isbn == "" {
		return nil, book.ErrInvalidISBN
	}

	query := url.Values{}
	query.Set("bibkeys", "ISBN:"+isbn)
	query.Set("format", "json")
	query.Set("jscmd", "data")
	apiURL := fmt.Sprintf("%s/api/books?%s", p.baseURL, query.Encode())

	var resp map[string]openLibraryBookResponse
	if err := p.getJSON(ctx, apiURL, &resp); err != nil {
		return nil, err
	}

	return projectOpenLibrary(resp, isbn), nil
}

// projectOpenLibrary maps the entry for isbn onto a book.Result.
// An empty result set yields nil.
func projectOpenLibrary(resp map[string]openLibraryBookResponse, isbn string) *book.Result {
	if len(resp) == 0 {
		return nil
	}

	olBook, ok := resp["ISBN:"+isbn]
	if !ok {
		// The API keys the object by the requested bibkey; fall back to the
		// only entry if the provider echoed it differently.
		for _, entry := range resp {
			olBook = entry
			break
		}
	}

	title := strings.TrimSpace(olBook.Title)
	if subtitle := strings.TrimSpace(olBook.Subtitle); subtitle != "" && title != "" {
		title = title + ": " + subtitle
	}

	authors := make([]string, 0, len(olBook.Authors))
	for _, author := range olBook.Authors {
		if author.Name != "" {
			authors = append(authors, author.Name)
		}
	}

	result := &book.Result{
		Title:       title,
		Authors:     authors,
		Subjects:    extractStringSlice(olBook.Subjects),
		PublishDate: olBook.PublishDate,
		Binding:     olBook.PhysicalFormat,
		Cover: book.CoverLinks{
			Preview:   olBook.Cover.Large,
			Thumbnail: firstNonEmpty(olBook.Cover.Medium, olBook.Cover.Small),
		},
	}

	if len(olBook.Identifiers.LCCN) > 0 {
		result.LCCN = strings.TrimSpace(olBook.Identifiers.LCCN[0])
	}

	return result
}

// extractStringSlice converts []any to []string, handling various element types.
func extractStringSlice(items []any) []string {
	if len(items) == 0 {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			result = append(result, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				result = append(result, name)
			}
		}
	}
	return result
}
