package plotpage

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
)

// ErrNoGrid is returned for a figure whose Subplots was never called.
var ErrNoGrid = errors.New("figure has no grid")

// Chart heights are derived from the figure height, within these bounds.
const (
	minChartHeight = 240
	maxChartHeight = 640
)

// Options configures page rendering.
type Options struct {
	Theme Theme
	// Title overrides the figure title when set.
	Title string
	// ExtraCSS is appended to the page style block.
	ExtraCSS string
}

// FromFigure lays out one page cell per grid surface in row-major order.
// Hidden surfaces without text keep their slot as an empty placeholder;
// surfaces without chart layers but with text become text panels.
func FromFigure(fig *figure.Figure, o Options) (*Page, error) {
	grid := fig.Grid()
	if grid == nil {
		return nil, ErrNoGrid
	}

	title := fig.Title
	if o.Title != "" {
		title = o.Title
	}

	page := NewPage(title, grid.Cols()).WithTheme(o.Theme)
	page.Style.Height = chartHeight(fig, grid.Rows())

	co := NewChartOpts(page.Theme, page.Style)

	for _, ax := range grid.All() {
		row, col := ax.Position()
		cell := Cell{Row: row, Col: col}

		chart := Renderable(nil)
		if !ax.Hidden() {
			chart = buildChart(co, ax)
		}

		switch {
		case chart != nil:
			cell.Kind = CellChart
			cell.Chart = chart
		case len(ax.Annotations()) > 0:
			cell.Kind = CellText
			cell.Texts = texts(ax.Annotations())
		default:
			cell.Kind = CellPlaceholder
		}

		page.Add(cell)
	}

	return page, nil
}

// Render writes fig as a standalone HTML page.
func Render(fig *figure.Figure, w io.Writer, o Options) error {
	page, err := FromFigure(fig, o)
	if err != nil {
		return err
	}

	err = HTMLRenderer{ExtraCSS: o.ExtraCSS}.Render(w, page)
	if err != nil {
		return fmt.Errorf("render page: %w", err)
	}

	return nil
}

func chartHeight(fig *figure.Figure, rows int) string {
	px := fig.Height * fig.DPI / float64(max(rows, 1))
	px = min(max(px, minChartHeight), maxChartHeight)

	return fmt.Sprintf("%.0fpx", math.Round(px))
}

func texts(notes []figure.Annotation) []Text {
	out := make([]Text, len(notes))

	for i, n := range notes {
		out[i] = Text{Text: n.Text, Size: n.Size, Color: cssColor(n.Color), Bold: n.Bold}
	}

	return out
}
