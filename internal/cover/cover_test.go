package cover

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/disintegration/imaging"
	"github.com/lepinkainen/coelho/internal/testutil"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageServer(t *testing.T, body []byte, status int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSaveResizesWideImages(t *testing.T) {
	server := imageServer(t, pngBytes(t, 800, 400), http.StatusOK)
	env := testutil.NewTestEnv(t)
	path := env.Path("covers", "book.jpg")

	err := NewDownloader(server.Client()).Save(context.Background(), server.URL+"/cover.png", path, 200)
	assert.NoError(t, err)

	img, err := imaging.Open(path)
	assert.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestSaveKeepsNarrowImages(t *testing.T) {
	server := imageServer(t, pngBytes(t, 120, 180), http.StatusOK)
	env := testutil.NewTestEnv(t)
	path := env.Path("book.jpg")

	err := NewDownloader(nil).Save(context.Background(), server.URL, path, 0)
	assert.NoError(t, err)

	img, err := imaging.Open(path)
	assert.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
}

func TestSaveErrors(t *testing.T) {
	env := testutil.NewTestEnv(t)
	d := NewDownloader(nil)

	err := d.Save(context.Background(), "", env.Path("x.jpg"), 100)
	assert.IsError(t, err, ErrNoImage)

	missing := imageServer(t, nil, http.StatusNotFound)
	err = d.Save(context.Background(), missing.URL, env.Path("x.jpg"), 100)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")

	garbage := imageServer(t, []byte("not an image"), http.StatusOK)
	err = d.Save(context.Background(), garbage.URL, env.Path("x.jpg"), 100)
	assert.Error(t, err)
	assert.False(t, env.FileExists("x.jpg"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Neuromancer - cover.jpg", Filename("Neuromancer"))
	assert.Equal(t, "Dune - Messiah - cover.jpg", Filename("Dune: Messiah"))
	assert.Equal(t, "AC-DC - cover.jpg", Filename("AC/DC"))
}
