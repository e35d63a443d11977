// Package render writes recorded figures to files, picking the backend
// from the output format: gonum/plot images or a go-echarts HTML page.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/render/plotpage"
	"github.com/Sumatoshi-tech/edaplot/pkg/render/static"
)

// ErrUnknownFormat is returned for output formats no backend can write.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output encoding.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpg"
	SVG  Format = "svg"
	PDF  Format = "pdf"
	HTML Format = "html"
)

const filePerm = 0o644

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{PNG, JPEG, SVG, PDF, HTML}
}

// ParseFormat resolves a format name or a file path by its extension.
func ParseFormat(name string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		ext = strings.ToLower(name)
	}

	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "svg":
		return SVG, nil
	case "pdf":
		return PDF, nil
	case "html", "htm":
		return HTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Options configures the HTML backend. Image formats ignore it.
type Options struct {
	Theme plotpage.Theme
	Title string
}

// Write encodes fig to w.
func Write(fig *figure.Figure, w io.Writer, format Format, o Options) error {
	switch format {
	case PNG, JPEG, SVG, PDF:
		return static.Render(fig, w, static.Format(format))
	case HTML:
		return plotpage.Render(fig, w, plotpage.Options{Theme: o.Theme, Title: o.Title})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Save writes fig to path, choosing the format from the extension.
// Nothing is created when the format is unknown.
func Save(fig *figure.Figure, path string, o Options) (Format, error) {
	format, err := ParseFormat(path)
	if err != nil {
		return "", err
	}

	if fig.Grid() == nil {
		return "", static.ErrNoGrid
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}

	err = Write(fig, f, format, o)
	if err != nil {
		_ = f.Close()

		return "", fmt.Errorf("write %s: %w", path, err)
	}

	err = f.Close()
	if err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	return format, nil
}
