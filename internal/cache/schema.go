package cache

import (
	"fmt"
	"regexp"
)

// DefaultCollection is the table (or key prefix) used when none is configured.
const DefaultCollection = "isbn_query_cache"

// All cache tables use "cache_key" as the primary key column.
const cacheSchemaTemplate = `
CREATE TABLE IF NOT EXISTS %s (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

var collectionPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateCollection rejects names that cannot be safely interpolated into SQL.
func validateCollection(name string) error {
	if !collectionPattern.MatchString(name) {
		return fmt.Errorf("invalid cache collection name: %q", name)
	}
	return nil
}

func cacheSchema(collection string) string {
	return fmt.Sprintf(cacheSchemaTemplate, collection)
}
