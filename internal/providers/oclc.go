package providers

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lepinkainen/coelho/internal/book"
)

const oclcBaseURL = "http://classify.oclc.org"

// OCLCClassifier scrapes the OCLC Classify demo pages for a Dewey code and
// FAST subject headings.
type OCLCClassifier struct {
	source
}

// Compile-time check that OCLCClassifier implements book.Enricher.
var _ book.Enricher = (*OCLCClassifier)(nil)

// NewOCLCClassifier creates a new OCLC Classify enricher.
func NewOCLCClassifier(opts ...Option) *OCLCClassifier {
	return &OCLCClassifier{source: newSource(oclcBaseURL, opts)}
}

// Name returns the human-readable name of this enricher.
func (c *OCLCClassifier) Name() string {
	return "oclc.org"
}

// Enrich looks up the classification of isbn. A single matching work is
// scraped straight away; a result list is followed through its first title
// link once.
func (c *OCLCClassifier) Enrich(ctx context.Context, isbn string, _ *book.Result) (*book.Enrichment, error) {
	if isbn == "" {
		return nil, book.ErrInvalidISBN
	}

	query := url.Values{}
	query.Set("search-standnum-txt", isbn)
	query.Set("startRec", "0")
	searchURL := fmt.Sprintf("%s/classify2/ClassifyDemo?%s", c.baseURL, query.Encode())

	doc, err := c.getDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	if classification := ScrapeClassification(doc); classification != nil {
		return &book.Enrichment{Classification: classification}, nil
	}

	link, ok := firstTitleLink(doc)
	if !ok {
		return nil, nil
	}

	workURL, ok, err := c.resolve(link)
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Warn("Ignoring OCLC work link on another host", "isbn", isbn, "link", link)
		return nil, nil
	}

	slog.Debug("Following OCLC work link", "isbn", isbn, "url", workURL)
	doc, err = c.getDocument(ctx, workURL)
	if err != nil {
		return nil, err
	}

	if classification := ScrapeClassification(doc); classification != nil {
		return &book.Enrichment{Classification: classification}, nil
	}
	return nil, nil
}

// resolve turns the link of a result row into an absolute URL on the
// classify host. Links pointing anywhere else report false.
func (c *OCLCClassifier) resolve(link string) (string, bool, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", false, fmt.Errorf("invalid base url %s: %w", c.baseURL, err)
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", false, fmt.Errorf("invalid work link %s: %w", link, err)
	}
	u := base.ResolveReference(ref)
	if u.Scheme != base.Scheme || u.Host != base.Host {
		return "", false, nil
	}
	return u.String(), true, nil
}

// ScrapeClassification extracts the Dewey code and the FAST subject headings
// from a single-work page. Both must be present; otherwise it returns nil.
func ScrapeClassification(doc *goquery.Document) *book.Classification {
	ddcCell := doc.Find("tbody").First().Find("tr").Eq(1).Find("td").Eq(1)
	if ddcCell.Length() == 0 {
		return nil
	}

	subjectBody := doc.Find("#subheadtbl").First().Find("tbody").First()
	if subjectBody.Length() == 0 {
		return nil
	}

	subjects := make([]string, 0)
	subjectBody.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return
		}
		if subject := strings.TrimSpace(cell.Text()); subject != "" {
			subjects = append(subjects, subject)
		}
	})

	ddc := strings.TrimSpace(ddcCell.Text())
	if ddc == "" || len(subjects) == 0 {
		return nil
	}

	return &book.Classification{
		DeweyCode:   ddc,
		SubjectTags: subjects,
	}
}

// firstTitleLink returns the href of the title link in the first result row.
func firstTitleLink(doc *goquery.Document) (string, bool) {
	href, ok := doc.Find("tbody").First().
		Find("tr").First().
		Find(".title").First().
		Find("a").First().
		Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}
	return strings.TrimSpace(href), true
}
