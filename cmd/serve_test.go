package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lepinkainen/coelho/internal/book"
	"github.com/lepinkainen/coelho/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWiresRouter(t *testing.T) {
	testutil.SetTestConfig(t)
	testutil.SetViperValue(t, "server.addr", ":8123")
	withPipeline(t, []book.Provider{&stubProvider{result: neuromancer()}}, nil)

	var gotAddr string
	var gotStatus int
	orig := runServer
	runServer = func(_ context.Context, addr string, handler http.Handler) error {
		gotAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search/isbn?q=9780441569595", nil))
		gotStatus = w.Code
		return nil
	}
	t.Cleanup(func() { runServer = orig })

	require.NoError(t, (&ServeCmd{}).Run())
	assert.Equal(t, ":8123", gotAddr)
	assert.Equal(t, http.StatusOK, gotStatus)

	require.NoError(t, (&ServeCmd{Addr: "127.0.0.1:9999"}).Run())
	assert.Equal(t, "127.0.0.1:9999", gotAddr)
}
