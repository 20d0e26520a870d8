package book

import "strings"

// upscaleRule rewrites a low resolution size token for one image host.
type upscaleRule struct {
	prefixes []string
	from     string
	to       string
	// count is passed to strings.Replace; -1 replaces every occurrence.
	count int
}

var upscaleRules = []upscaleRule{
	{
		prefixes: []string{"https://m.media-amazon.com/"},
		from:     "160",
		to:       "512",
		count:    -1,
	},
	{
		prefixes: []string{"http://books.google.com/", "https://books.google.com/"},
		from:     "zoom=1",
		to:       "zoom=0",
		count:    1,
	},
}

// UpscaleImage swaps the low resolution token of a known image host for a
// high resolution one. URLs from other hosts are returned unchanged.
func UpscaleImage(url string) string {
	for _, rule := range upscaleRules {
		for _, prefix := range rule.prefixes {
			if strings.HasPrefix(url, prefix) && strings.Contains(url, rule.from) {
				return strings.Replace(url, rule.from, rule.to, rule.count)
			}
		}
	}
	return url
}

// SecureURL rewrites http and protocol-relative URLs to https.
func SecureURL(url string) string {
	url = strings.TrimSpace(url)
	switch {
	case strings.HasPrefix(url, "http://"):
		return "https://" + strings.TrimPrefix(url, "http://")
	case strings.HasPrefix(url, "//"):
		return "https:" + url
	}
	return url
}

// SelectImage picks the cover URL for a record: the preview link when present,
// otherwise the upscaled thumbnail. The result always uses https.
func SelectImage(links CoverLinks) string {
	if links.Preview != "" {
		return SecureURL(links.Preview)
	}
	if links.Thumbnail != "" {
		return SecureURL(UpscaleImage(links.Thumbnail))
	}
	return ""
}
