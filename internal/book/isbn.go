package book

import "strings"

// NormalizeISBN strips hyphens and spaces from ISBN and upper-cases an
// ISBN-10 check character.
func NormalizeISBN(isbn string) string {
	normalized := strings.ReplaceAll(isbn, "-", "")
	normalized = strings.ReplaceAll(normalized, " ", "")
	return strings.ToUpper(strings.TrimSpace(normalized))
}

// ValidISBN reports whether a normalized ISBN has the shape of an ISBN-10 or
// ISBN-13. Check digits are not verified.
func ValidISBN(isbn string) bool {
	switch len(isbn) {
	case 10:
		for i, r := range isbn {
			if r >= '0' && r <= '9' {
				continue
			}
			if i == 9 && r == 'X' {
				continue
			}
			return false
		}
		return true
	case 13:
		for _, r := range isbn {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	}
	return false
}
