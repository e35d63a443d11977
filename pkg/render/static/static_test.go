package static_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/render/static"
)

func sampleFigure(t *testing.T) *figure.Figure {
	t.Helper()

	fig := figure.New(6, 4)
	fig.DPI = 50

	grid, err := fig.Subplots(2, 2)
	require.NoError(t, err)

	bars := grid.At(0, 0)
	bars.SetXCategories([]string{"a", "b", "c"})
	bars.Bar(figure.BarLayer{Name: "n", Positions: []float64{0, 1, 2}, Values: []float64{3, 1, 2}, Width: 0.8, Colors: []string{"navy"}})
	bars.Annotate(figure.Annotation{Text: "3", X: 0, Y: 3})
	bars.SetLegend(figure.Legend{Title: "legend"})
	bars.Despine()

	pie := grid.At(0, 1)
	pie.Wedges(figure.WedgeLayer{Values: []float64{2, 1}, Labels: []string{"x", "y"}, Colors: []string{"crimson", "navy"}, InnerRadius: 0.8})

	heat := grid.At(1, 0)
	heat.Heatmap(figure.HeatmapLayer{
		RowLabels: []string{"p", "q"},
		ColLabels: []string{"p", "q"},
		Values:    [][]float64{{1, 0.5}, {0.5, 1}},
		Colormap:  "YlGnBu",
		Annotate:  true,
		ColorBar:  true,
	})

	grid.At(1, 1).Hide()

	return fig
}

func TestRender_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format static.Format
		prefix []byte
	}{
		{static.PNG, []byte("\x89PNG\r\n\x1a\n")},
		{static.JPEG, []byte{0xff, 0xd8}},
		{static.SVG, nil},
		{static.PDF, []byte("%PDF")},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, static.Render(sampleFigure(t), &buf, tt.format))
			if tt.prefix == nil {
				assert.Contains(t, buf.String(), "<svg")

				return
			}

			assert.True(t, bytes.HasPrefix(buf.Bytes(), tt.prefix))
		})
	}
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.ErrorIs(t, static.Render(figure.New(4, 4), &buf, static.PNG), static.ErrNoGrid)
	require.Error(t, static.Render(sampleFigure(t), &buf, "tiff"))
}

func TestRender_EmptyAndDegenerateSurfaces(t *testing.T) {
	t.Parallel()

	fig := figure.New(4, 3)
	fig.DPI = 40
	fig.Title = "empty"

	grid, err := fig.Subplots(1, 2)
	require.NoError(t, err)

	bars := grid.At(0, 0)
	bars.Bar(figure.BarLayer{Width: 0.8, Orientation: figure.Horizontal})
	bars.SetXLim(0, 0)
	bars.InvertY = true

	text := grid.At(0, 1)
	text.Text(0.5, 0.5, "4.5", 30)
	text.Hide()

	var buf bytes.Buffer
	require.NoError(t, static.Render(fig, &buf, static.PNG))
	assert.NotZero(t, buf.Len())
}
