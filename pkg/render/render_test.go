package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/render"
	"github.com/Sumatoshi-tech/edaplot/pkg/render/static"
)

func newFigure(t *testing.T) *figure.Figure {
	t.Helper()

	fig := figure.New(4, 3)
	fig.DPI = 40

	grid, err := fig.Subplots(1, 2)
	require.NoError(t, err)

	ax := grid.At(0, 0)
	ax.SetXCategories([]string{"a", "b"})
	ax.Bar(figure.BarLayer{Positions: []float64{0, 1}, Values: []float64{2, 3}, Width: 0.8})
	grid.At(0, 1).Hide()

	return fig
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want render.Format
	}{
		{"out.png", render.PNG},
		{"out.JPEG", render.JPEG},
		{"dir/out.jpg", render.JPEG},
		{"plot.svg", render.SVG},
		{"plot.pdf", render.PDF},
		{"report.html", render.HTML},
		{"html", render.HTML},
	}

	for _, tt := range tests {
		got, err := render.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := render.ParseFormat("out.tiff")
	require.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestWrite_HTMLPlaceholder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, render.Write(newFigure(t), &buf, render.HTML, render.Options{Title: "t"}))
	assert.Equal(t, 1, strings.Count(buf.String(), `class="cell cell-hidden"`))
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.ErrorIs(t, render.Write(newFigure(t), &buf, "bmp", render.Options{}), render.ErrUnknownFormat)
}

func TestSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "fig.png")

	format, err := render.Save(newFigure(t), path, render.Options{})
	require.NoError(t, err)
	assert.Equal(t, render.PNG, format)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestSave_NothingCreatedOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := render.Save(newFigure(t), filepath.Join(dir, "fig.gif"), render.Options{})
	require.ErrorIs(t, err, render.ErrUnknownFormat)

	_, err = render.Save(figure.New(2, 2), filepath.Join(dir, "empty.png"), render.Options{})
	require.ErrorIs(t, err, static.ErrNoGrid)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
