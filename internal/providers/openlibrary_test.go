package providers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

const openLibraryPayload = `{
	"ISBN:9780441569595": {
		"title": "Neuromancer",
		"authors": [{"url": "https://openlibrary.org/authors/OL1A", "name": "William Gibson"}],
		"publish_date": "1984",
		"subjects": [{"name": "Fiction", "url": "x"}, {"name": "Cyberpunk", "url": "y"}],
		"identifiers": {"lccn": ["91174394"], "isbn_13": ["9780441569595"]},
		"cover": {
			"small": "https://covers.openlibrary.org/b/id/1-S.jpg",
			"medium": "https://covers.openlibrary.org/b/id/1-M.jpg",
			"large": "https://covers.openlibrary.org/b/id/1-L.jpg"
		}
	}
}`

func TestOpenLibraryLookupSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/books", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ISBN:9780441569595", r.URL.Query().Get("bibkeys"))
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "data", r.URL.Query().Get("jscmd"))
		_, _ = w.Write([]byte(openLibraryPayload))
	})
	server := newIPv4TestServer(t, mux)

	p := NewOpenLibraryProvider(testOptions(server)...)
	result, err := p.Lookup(context.Background(), "9780441569595")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, "Neuromancer", result.Title)
	require.Equal(t, []string{"William Gibson"}, result.Authors)
	require.Equal(t, []string{"Fiction", "Cyberpunk"}, result.Subjects)
	require.Equal(t, "91174394", result.LCCN)
	require.Equal(t, "1984", result.PublishDate)
	require.Equal(t, "https://covers.openlibrary.org/b/id/1-L.jpg", result.Cover.Preview)
	require.Equal(t, "https://covers.openlibrary.org/b/id/1-M.jpg", result.Cover.Thumbnail)
}

func TestOpenLibraryLookupEmpty(t *testing.T) {
	server := newIPv4TestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	p := NewOpenLibraryProvider(testOptions(server)...)
	result, err := p.Lookup(context.Background(), "0000000000")
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestProjectOpenLibrarySubtitle(t *testing.T) {
	resp := map[string]openLibraryBookResponse{
		"ISBN:1": {Title: "Dune", Subtitle: "Deluxe Edition"},
	}
	result := projectOpenLibrary(resp, "1")
	require.Equal(t, "Dune: Deluxe Edition", result.Title)
	require.Empty(t, result.LCCN)
	require.Empty(t, result.Authors)
}

func TestProjectOpenLibraryTrimsTitle(t *testing.T) {
	resp := map[string]openLibraryBookResponse{
		"ISBN:1": {Title: " Dune ", Subtitle: " "},
	}
	require.Equal(t, "Dune", projectOpenLibrary(resp, "1").Title)

	resp = map[string]openLibraryBookResponse{
		"ISBN:1": {Title: "\t", Subtitle: "Deluxe Edition"},
	}
	result := projectOpenLibrary(resp, "1")
	require.Empty(t, result.Title)
	require.False(t, result.Usable())
}

func TestExtractStringSlice(t *testing.T) {
	require.Nil(t, extractStringSlice(nil))
	require.Equal(t, []string{"a", "b"}, extractStringSlice([]any{"a", map[string]any{"name": "b"}, 3}))
}
