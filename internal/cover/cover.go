// Package cover downloads a resolved cover image and stores a resized copy.
package cover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// DefaultMaxWidth is the width covers are shrunk to when none is given.
const DefaultMaxWidth = 600

// ErrNoImage is returned when the record has no image URL.
var ErrNoImage = errors.New("record has no cover image")

// Downloader fetches cover images over HTTP.
type Downloader struct {
	httpClient *http.Client
}

// NewDownloader returns a Downloader using client, or a client with a 30s
// timeout when client is nil.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Downloader{httpClient: client}
}

// Save downloads imageURL and writes it to savePath as a JPEG no wider than
// maxWidth. Narrower images are stored at their original size.
func (d *Downloader) Save(ctx context.Context, imageURL, savePath string, maxWidth int) error {
	if imageURL == "" {
		return ErrNoImage
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create cover request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, imageURL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode cover: %w", err)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return fmt.Errorf("failed to create cover directory: %w", err)
	}

	if err := imaging.Save(img, savePath, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("failed to save cover: %w", err)
	}

	slog.Debug("Cover saved", "url", imageURL, "path", savePath, "width", img.Bounds().Dx())
	return nil
}

// Filename builds a file name for a book's cover from its title.
func Filename(title string) string {
	name := strings.ReplaceAll(title, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name + " - cover.jpg"
}
