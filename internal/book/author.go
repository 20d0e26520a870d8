package book

import "strings"

// NormalizeAuthor rewrites "First Middle Last" as "Last, First Middle".
// Names that already contain a comma, or have no space, are returned unchanged.
func NormalizeAuthor(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, ",") || !strings.Contains(name, " ") {
		return name
	}

	fields := strings.Fields(name)
	last := fields[len(fields)-1]
	return last + ", " + strings.Join(fields[:len(fields)-1], " ")
}

// FormatAuthors normalizes each name and joins them with "; ".
// Empty names are dropped.
func FormatAuthors(names []string) string {
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		if n := NormalizeAuthor(name); n != "" {
			normalized = append(normalized, n)
		}
	}
	return strings.Join(normalized, "; ")
}
