// Package providers implements the external book metadata sources: one client
// per provider plus the extraction logic that turns its response into a
// book.Result or book.Enrichment.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is used when no HTTP client is supplied.
const DefaultTimeout = 10 * time.Second

const userAgent = "coelho/1.0"

// Option configures a provider client.
type Option func(*source)

// WithHTTPClient sets the HTTP client used for outbound requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *source) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithBaseURL points the provider at a different host, mostly for tests.
func WithBaseURL(baseURL string) Option {
	return func(s *source) {
		if baseURL != "" {
			s.baseURL = baseURL
		}
	}
}

// WithAPIKey sets the API key for providers that use one.
func WithAPIKey(key string) Option {
	return func(s *source) {
		s.apiKey = key
	}
}

// source is the request plumbing shared by all providers.
type source struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func newSource(defaultBaseURL string, opts []Option) source {
	s := source{baseURL: defaultBaseURL}
	for _, opt := range opts {
		opt(&s)
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return s
}

// do issues a GET request and returns the response for any status code.
func (s *source) do(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request: %w", err)
	}
	return resp, nil
}

// getJSON fetches url and decodes a 200 response into out.
func (s *source) getJSON(ctx context.Context, url string, out any) error {
	resp, err := s.do(ctx, url, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// getDocument fetches url and parses a 200 response as HTML.
func (s *source) getDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := s.do(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}
