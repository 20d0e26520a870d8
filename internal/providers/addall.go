package providers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lepinkainen/coelho/internal/book"
)

const addAllBaseURL = "https://www.addall.com"

// AddAllProvider scrapes the AddAll book price comparison search page.
type AddAllProvider struct {
	source
}

// Compile-time check that AddAllProvider implements book.Provider.
var _ book.Provider = (*AddAllProvider)(nil)

// NewAddAllProvider creates a new AddAll provider.
func NewAddAllProvider(opts ...Option) *AddAllProvider {
	return &AddAllProvider{source: newSource(addAllBaseURL, opts)}
}

// Name returns the human-readable name of this provider.
func (p *AddAllProvider) Name() string {
	return "addall.com"
}

// Lookup fetches the AddAll search page for isbn and scrapes the first hit.
func (p *AddAllProvider) Lookup(ctx context.Context, isbn string) (*book.Result, error) {
	if isbn == "" {
		return nil, book.ErrInvalidISBN
	}

	query := url.Values{}
	query.Set("query", isbn)
	query.Set("type", "ISBN")
	pageURL := fmt.Sprintf("%s/New/NewSearch.cgi?%s", p.baseURL, query.Encode())

	doc, err := p.getDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	return scrapeAddAll(doc), nil
}

// scrapeAddAll extracts title, author, cover and edition details.
// It returns nil when either the title or the author is missing.
func scrapeAddAll(doc *goquery.Document) *book.Result {
	titleSel := doc.Find(".ntitle").First()
	authorSel := doc.Find(".nauthor").First()
	if titleSel.Length() == 0 || authorSel.Length() == 0 {
		return nil
	}

	title := strings.TrimSpace(titleSel.Text())
	_, author, found := strings.Cut(authorSel.Text(), "by")
	author = strings.TrimSpace(author)
	if title == "" || !found || author == "" {
		return nil
	}

	result := &book.Result{
		Title:   title,
		Authors: []string{author},
	}

	if src, ok := doc.Find(".nimg").First().Find("img").First().Attr("src"); ok {
		result.Cover.Thumbnail = strings.TrimSpace(src)
	}

	// The description block lists publisher details one per line; the 4th and
	// 5th lines are "Publish Date: ..." and "Binding: ...".
	if desc := doc.Find(".ndesc").First(); desc.Length() > 0 {
		lines := strings.Split(desc.Text(), "\n")
		if len(lines) > 3 {
			result.PublishDate = descValue(lines[3])
		}
		if len(lines) > 4 {
			result.Binding = descValue(lines[4])
		}
	}

	return result
}

func descValue(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(strings.ReplaceAll(value, ":", " "))
}
