package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lepinkainen/coelho/internal/config"
	"github.com/lepinkainen/coelho/internal/cover"
	"gopkg.in/yaml.v3"
)

// coverHTTPClient is used for cover downloads; nil means the downloader default.
var coverHTTPClient *http.Client

// LookupCmd resolves a single ISBN
type LookupCmd struct {
	ISBN       string `arg:"" help:"ISBN-10 or ISBN-13, hyphens allowed"`
	Format     string `help:"Output format" enum:"json,yaml,pretty" default:"json"`
	Cover      string `help:"Download the cover image to this file, or into this directory named after the title" type:"path"`
	CoverWidth int    `help:"Maximum width of the downloaded cover in pixels" default:"600"`
}

func (l *LookupCmd) Run() error {
	settings := config.Load()

	r, gateway, err := newResolver(settings)
	if err != nil {
		return err
	}
	defer closeGateway(gateway)

	ctx := context.Background()
	res, resolveErr := r.Resolve(ctx, l.ISBN)
	if res == nil {
		return resolveErr
	}

	// A failed cache write still resolved the record, so print it before
	// reporting the error.
	if err := render(stdout, l.Format, envelope{OK: resolveErr == nil, Cached: res.Cached, Result: res.Record}); err != nil {
		return err
	}
	if resolveErr != nil {
		return resolveErr
	}

	if l.Cover != "" {
		path := coverPath(l.Cover, res.Record.Title)
		if err := cover.NewDownloader(coverHTTPClient).Save(ctx, res.Record.Image, path, l.CoverWidth); err != nil {
			return fmt.Errorf("failed to save cover: %w", err)
		}
		slog.Info("Cover saved", "path", path)
	}

	return nil
}

// coverPath returns target itself unless it is an existing directory, in
// which case the cover is named after the title inside it.
func coverPath(target, title string) string {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, cover.Filename(title))
	}
	return target
}

func render(w io.Writer, format string, env envelope) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case "pretty":
		_, err := io.WriteString(w, renderPretty(lipgloss.NewRenderer(w), env))
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env)
	}
}

func renderPretty(r *lipgloss.Renderer, env envelope) string {
	title := r.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	label := r.NewStyle().Foreground(lipgloss.Color("244"))
	note := r.NewStyle().Italic(true).Foreground(lipgloss.Color("62"))

	rec := env.Result
	var b strings.Builder
	b.WriteString(title.Render(rec.Title) + "\n")

	row := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(label.Render(fmt.Sprintf("%-10s", name)) + " " + value + "\n")
	}

	row("Author", rec.Author)
	row("ISBN", rec.ISBN)
	row("Published", rec.PublishDate)
	row("Binding", rec.Binding)
	if rec.Classification != nil {
		row("Dewey", rec.Classification.DeweyCode)
		row("FAST", strings.Join(rec.Classification.SubjectTags, ", "))
	}
	row("Subjects", strings.Join(rec.Subjects, ", "))
	row("Cover", rec.Image)

	if env.Cached {
		b.WriteString(note.Render("(from cache)") + "\n")
	}
	return b.String()
}
