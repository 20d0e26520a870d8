package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/lepinkainen/coelho/internal/book"
)

const isbndbBaseURL = "https://api2.isbndb.com"

// ISBNdbProvider implements book.Provider for the ISBNdb API.
// It needs an API key; without one it reports no data.
type ISBNdbProvider struct {
	source
}

// Compile-time check that ISBNdbProvider implements book.Provider.
var _ book.Provider = (*ISBNdbProvider)(nil)

// NewISBNdbProvider creates a new ISBNdb provider.
func NewISBNdbProvider(opts ...Option) *ISBNdbProvider {
	return &ISBNdbProvider{source: newSource(isbndbBaseURL, opts)}
}

// Name returns the human-readable name of this provider.
func (p *ISBNdbProvider) Name() string {
	return "ISBNdb"
}

// isbndbBookResponse matches the ISBNdb API response structure.
type isbndbBookResponse struct {
	Book struct {
		Title         string   `json:"title"`
		ISBN          string   `json:"isbn"`
		ISBN13        string   `json:"isbn13"`
		DatePublished string   `json:"date_published"`
		Binding       string   `json:"binding"`
		Image         string   `json:"image"`
		ImageOriginal string   `json:"image_original"`
		Authors       []string `json:"authors"`
		Subjects      []string `json:"subjects"`
	} `json:"book"`
}

// Lookup fetches book data from ISBNdb by ISBN.
func (p *ISBNdbProvider) Lookup(ctx context.Context, isbn string) (*book.Result, error) {
	if isbn == "" {
		return nil, book.ErrInvalidISBN
	}

	if p.apiKey == "" {
		// No API key - skip this provider silently
		return nil, nil
	}

	header := http.Header{}
	header.Set("Authorization", p.apiKey)

	resp, err := p.do(ctx, fmt.Sprintf("%s/book/%s", p.baseURL, isbn), header)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	case http.StatusUnauthorized:
		return nil, fmt.Errorf("ISBNdb API key invalid or expired")
	default:
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result isbndbBookResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return projectISBNdb(&result), nil
}

func projectISBNdb(resp *isbndbBookResponse) *book.Result {
	b := resp.Book
	if b.Title == "" && b.ISBN == "" && b.ISBN13 == "" {
		return nil
	}

	// Filter out generic "Subjects" entry
	var subjects []string
	for _, s := range b.Subjects {
		if s != "" && s != "Subjects" {
			subjects = append(subjects, s)
		}
	}

	return &book.Result{
		Title:       strings.TrimSpace(b.Title),
		Authors:     b.Authors,
		Subjects:    subjects,
		PublishDate: b.DatePublished,
		Binding:     b.Binding,
		Cover: book.CoverLinks{
			Preview:   b.ImageOriginal,
			Thumbnail: b.Image,
		},
	}
}
