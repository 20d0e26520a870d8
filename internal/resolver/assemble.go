package resolver

import (
	"github.com/lepinkainen/coelho/internal/book"
)

// assemble builds the cacheable record from the winning primary result and
// whatever the enrichers produced. Enrichments are applied in order: a
// classification replaces any earlier one and a non-empty subject list
// replaces the primary subjects.
func assemble(isbn string, primary *book.Result, enrichments []*book.Enrichment) *book.Record {
	record := &book.Record{
		ISBN:        isbn,
		Title:       primary.Title,
		Author:      book.FormatAuthors(primary.Authors),
		Image:       book.SelectImage(primary.Cover),
		Subjects:    copyStrings(primary.Subjects),
		PublishDate: primary.PublishDate,
		Binding:     primary.Binding,
	}

	for _, e := range enrichments {
		if e == nil {
			continue
		}
		if e.Classification != nil {
			record.Classification = e.Classification
		}
		if len(e.Subjects) > 0 {
			record.Subjects = copyStrings(e.Subjects)
		}
	}

	return record
}

// copyStrings returns a non-nil copy of s.
func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
