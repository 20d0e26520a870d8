package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lepinkainen/coelho/internal/book"
)

const googleBooksBaseURL = "https://www.googleapis.com/books/v1"

// GoogleBooksProvider implements book.Provider for the Google Books API.
type GoogleBooksProvider struct {
	source
}

// Compile-time check that GoogleBooksProvider implements book.Provider.
var _ book.Provider = (*GoogleBooksProvider)(nil)

// NewGoogleBooksProvider creates a new Google Books provider.
// The API key is optional.
func NewGoogleBooksProvider(opts ...Option) *GoogleBooksProvider {
	return &GoogleBooksProvider{source: newSource(googleBooksBaseURL, opts)}
}

// Name returns the human-readable name of this provider.
func (p *GoogleBooksProvider) Name() string {
	return "Google Books"
}

// googleBooksResponse matches the Google Books API response structure.
type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Subtitle      string   `json:"subtitle"`
			Authors       []string `json:"authors"`
			PublishedDate string   `json:"publishedDate"`
			PrintType     string   `json:"printType"`
			Categories    []string `json:"categories"`
			ImageLinks    struct {
				SmallThumbnail string `json:"smallThumbnail"`
				Thumbnail      string `json:"thumbnail"`
				Small          string `json:"small"`
				Medium         string `json:"medium"`
				Large          string `json:"large"`
				ExtraLarge     string `json:"extraLarge"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Lookup fetches book data from Google Books API by ISBN.
func (p *GoogleBooksProvider) Lookup(ctx context.Context, isbn string) (*book.Result, error) {
	if isbn == "" {
		return nil, book.ErrInvalidISBN
	}

	query := url.Values{}
	query.Set("q", "isbn:"+isbn)
	if p.apiKey != "" {
		query.Set("key", p.apiKey)
	}
	apiURL := fmt.Sprintf("%s/volumes?%s", p.baseURL, query.Encode())

	var resp googleBooksResponse
	if err := p.getJSON(ctx, apiURL, &resp); err != nil {
		return nil, err
	}

	return projectGoogleBooks(&resp), nil
}

// projectGoogleBooks maps the first volume onto a book.Result.
// Zero results yield nil.
func projectGoogleBooks(resp *googleBooksResponse) *book.Result {
	if resp.TotalItems == 0 || len(resp.Items) == 0 {
		return nil
	}

	// Use first item (best match)
	vol := resp.Items[0].VolumeInfo
	links := vol.ImageLinks

	return &book.Result{
		Title:       strings.TrimSpace(vol.Title),
		Authors:     vol.Authors,
		Subjects:    vol.Categories,
		PublishDate: vol.PublishedDate,
		Binding:     printTypeBinding(vol.PrintType),
		Cover: book.CoverLinks{
			Preview:   firstNonEmpty(links.ExtraLarge, links.Large, links.Medium, links.Small),
			Thumbnail: firstNonEmpty(links.Thumbnail, links.SmallThumbnail),
		},
	}
}

// printTypeBinding keeps the print type only when it says more than "BOOK".
func printTypeBinding(printType string) string {
	if printType == "" || printType == "BOOK" {
		return ""
	}
	return printType
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
