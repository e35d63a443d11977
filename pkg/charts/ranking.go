package charts

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/format"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
	"github.com/Sumatoshi-tech/edaplot/pkg/palette"
)

// Orient names the direction groups are listed in.
type Orient string

// Orients. Vertical lists groups down the y axis with horizontal bars;
// Horizontal lists them along the x axis with vertical bars.
const (
	OrientVertical   Orient = "vertical"
	OrientHorizontal Orient = "horizontal"
)

// MeanSumOptions configures MeanSumAnalysis.
type MeanSumOptions struct {
	Orient  Orient
	Palette string
	Width   float64
	Height  float64
}

// MeanSumAnalysis draws the mean and the sum of value per group side by
// side. Both panels list the groups by descending mean.
func MeanSumAnalysis(df *frame.Frame, group, value string, opts *MeanSumOptions) (*figure.Figure, error) {
	var o MeanSumOptions
	if opts != nil {
		o = *opts
	}

	o.Orient = orDefault(o.Orient, OrientVertical)
	o.Palette = orDefault(o.Palette, "plasma")
	o.Width = orDefault(o.Width, 15)
	o.Height = orDefault(o.Height, 6)

	if o.Orient != OrientVertical && o.Orient != OrientHorizontal {
		return nil, invalid("unknown orient %q", o.Orient)
	}

	err := df.Require(group, value)
	if err != nil {
		return nil, err
	}

	stats, err := df.GroupStats(group, value)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(stats, func(a, b frame.GroupStat) int {
		return descendingNaNLast(a.Mean, b.Mean)
	})

	colors, err := colorsFor(o.Palette, len(stats))
	if err != nil {
		return nil, err
	}

	fig := figure.New(o.Width, o.Height)

	grid, err := fig.Subplots(1, 2)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(stats))
	means := make([]float64, len(stats))
	sums := make([]float64, len(stats))

	for i, s := range stats {
		keys[i], means[i], sums[i] = s.Key, s.Mean, s.Sum
	}

	labels := AnnotateBars{FontSize: 12, Color: "black", Decimals: 0}

	for k, values := range [][]float64{means, sums} {
		ax := grid.At(0, k)
		rankedBars(ax, keys, values, colors, o.Orient)

		if o.Orient == OrientVertical {
			labels.Horizontal(ax, false)
			ax.SetXLabel(value)
		} else {
			labels.Vertical(ax, false)
			ax.SetXLabel(group)
		}

		FormatSpines(ax, false)
		ax.SetYLabel("")
	}

	grid.At(0, 0).SetTitle(fmt.Sprintf("Mean of %s by %s", value, group), TitleColor, figure.DefaultTitleSize)
	grid.At(0, 1).SetTitle(fmt.Sprintf("Sum of %s by %s", value, group), TitleColor, figure.DefaultTitleSize)

	return fig, nil
}

// rankedBars records one bar per key in the given order.
func rankedBars(ax *figure.Axes, keys []string, values []float64, colors []string, orient Orient) {
	layer := figure.BarLayer{
		Positions: positions(len(keys)),
		Values:    values,
		Colors:    colors,
		Width:     defaultWidth,
	}

	if orient == OrientVertical {
		layer.Orientation = figure.Horizontal
		ax.SetYCategories(keys)
		ax.InvertY = true
	} else {
		ax.SetXCategories(keys)
	}

	ax.Bar(layer)
}

func descendingNaNLast(a, b float64) int {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	case math.IsNaN(b):
		return -1
	default:
		return cmp.Compare(b, a)
	}
}

// AnswerOptions configures AnswerPlot.
type AnswerOptions struct {
	// Top is the number of entries in the highest and lowest panels.
	Top int
	// KeepNonPositive lets zero and negative values into the lowest panel.
	KeepNonPositive bool
	Palette         string
}

// Answer text sizes.
const (
	answerValueSize = 45.0
	answerTextSize  = 12.0
)

// AnswerPlot fills the last three rows of grid, one grid column per entry
// of cols: a text panel with the mean of the column, the Top groups with
// the highest values and the Top groups with the lowest values.
// grouped holds one row per group, keyed by groupCol.
func AnswerPlot(grouped *frame.Frame, groupCol string, cols []string, grid *figure.Grid, opts *AnswerOptions) error {
	var o AnswerOptions
	if opts != nil {
		o = *opts
	}

	o.Top = orDefault(o.Top, 5)
	o.Palette = orDefault(o.Palette, "plasma")

	if grid == nil {
		return invalid("no grid to draw on")
	}

	if len(cols) != grid.Cols() {
		return invalid("%d columns given for a grid of %d columns", len(cols), grid.Cols())
	}

	if grid.Rows() < 3 {
		return invalid("grid needs at least 3 rows, got %d", grid.Rows())
	}

	if o.Top < 0 {
		return invalid("top must not be negative, got %d", o.Top)
	}

	err := grouped.Require(append([]string{groupCol}, cols...)...)
	if err != nil {
		return err
	}

	err = requireNumeric(grouped, cols...)
	if err != nil {
		return err
	}

	lowPalette := palette.Reversed(o.Palette)

	for _, name := range []string{o.Palette, lowPalette} {
		_, err = colorsFor(name, 1)
		if err != nil {
			return err
		}
	}

	keys, _, err := grouped.Records(groupCol)
	if err != nil {
		return err
	}

	rows := grid.Rows()

	for j, col := range cols {
		xs, _ := grouped.Floats(col)
		ranked := rankDescending(keys, xs)

		high := ranked[:min(o.Top, len(ranked))]

		low := ranked
		if !o.KeepNonPositive {
			low = slices.DeleteFunc(slices.Clone(ranked), func(e rankedEntry) bool {
				return math.IsNaN(e.value) || e.value <= 0
			})
		}

		low = low[max(len(low)-o.Top, 0):]

		limit := maxFinite(xs)

		for _, panel := range []struct {
			ax      *figure.Axes
			entries []rankedEntry
			palette string
			title   string
		}{
			{grid.At(rows-2, j), high, o.Palette, "Highest"},
			{grid.At(rows-1, j), low, lowPalette, "Lowest"},
		} {
			colors, colorErr := colorsFor(panel.palette, len(panel.entries))
			if colorErr != nil {
				return colorErr
			}

			pk := make([]string, len(panel.entries))
			pv := make([]float64, len(panel.entries))

			for i, e := range panel.entries {
				pk[i], pv[i] = e.key, e.value
			}

			rankedBars(panel.ax, pk, pv, colors, OrientVertical)
			panel.ax.SetTitle(fmt.Sprintf("Top %d %s with %s \n%s",
				o.Top, format.Capitalize(groupCol), panel.title, format.Capitalize(col)), "", PanelTitle)
			panel.ax.SetXLim(0, limit)
			panel.ax.SetXLabel(col)
			panel.ax.SetYLabel("")
			FormatSpines(panel.ax, false)
		}

		text := grid.At(rows-3, j)
		text.Text(0.5, 0.30, format.Rounded(nanMean(xs), 2), answerValueSize)
		text.Text(0.5, 0.12, "is the average of "+col, answerTextSize)
		text.Text(0.5, 0.00, "by "+groupCol, answerTextSize)
		text.Hide()
	}

	return nil
}

type rankedEntry struct {
	key   string
	value float64
}

// rankDescending pairs keys with values sorted by descending value, nulls last.
func rankDescending(keys []string, values []float64) []rankedEntry {
	entries := make([]rankedEntry, len(keys))
	for i := range keys {
		entries[i] = rankedEntry{key: keys[i], value: values[i]}
	}

	slices.SortStableFunc(entries, func(a, b rankedEntry) int {
		return descendingNaNLast(a.value, b.value)
	})

	return entries
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))

	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}

	return out
}

func maxFinite(xs []float64) float64 {
	f := finite(xs)
	if len(f) == 0 {
		return 0
	}

	return floats.Max(f)
}

func nanMean(xs []float64) float64 {
	f := finite(xs)
	if len(f) == 0 {
		return math.NaN()
	}

	return stat.Mean(f, nil)
}
