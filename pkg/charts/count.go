package charts

import (
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/format"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
	"github.com/Sumatoshi-tech/edaplot/pkg/tiler"
)

// pandasBarWidth is the bar width of stacked percentage panels.
const pandasBarWidth = 0.5

// categoryOrder returns the categories of col by descending frequency, or
// in their natural order when unordered.
func categoryOrder(df *frame.Frame, col string, unordered bool) ([]string, error) {
	if unordered {
		return df.Categories(col)
	}

	return df.Order(col)
}

func tally(df *frame.Frame, col string) (map[string]int, error) {
	counts, err := df.ValueCounts(col)
	if err != nil {
		return nil, err
	}

	m := make(map[string]int, len(counts))
	for _, c := range counts {
		m[c.Value] = c.Count
	}

	return m, nil
}

// countBars records one bar per category of col in order. With a hue the
// bars of each category are dodged, one series per hue level, and
// combinations absent from the data draw no bar.
func countBars(ax *figure.Axes, df *frame.Frame, col string, order []string, hue GroupBy, paletteName string, orient figure.Orientation) error {
	if orient == figure.Horizontal {
		ax.SetYCategories(order)
		ax.InvertY = true
		ax.SetYLabel(col)
		ax.SetXLabel("count")
	} else {
		ax.SetXCategories(order)
		ax.SetXLabel(col)
		ax.SetYLabel("count")
	}

	if !hue.Set() {
		counts, err := tally(df, col)
		if err != nil {
			return err
		}

		colors, err := colorsFor(paletteName, len(order))
		if err != nil {
			return err
		}

		values := make([]float64, len(order))
		for i, cat := range order {
			values[i] = float64(counts[cat])
		}

		ax.Bar(figure.BarLayer{
			Positions:   positions(len(order)),
			Values:      values,
			Colors:      colors,
			Width:       defaultWidth,
			Orientation: orient,
		})

		return nil
	}

	levels, err := df.Categories(hue.Column())
	if err != nil {
		return err
	}

	colors, err := colorsFor(paletteName, len(levels))
	if err != nil {
		return err
	}

	ct, err := df.Crosstab(col, hue.Column())
	if err != nil {
		return err
	}

	rowIdx := make(map[string]int, len(ct.RowLabels))
	for i, l := range ct.RowLabels {
		rowIdx[l] = i
	}

	each := defaultWidth / float64(len(levels))
	center := float64(len(levels)-1) / 2

	for j, level := range levels {
		colIdx := slices.Index(ct.ColLabels, level)
		offset := (float64(j) - center) * each

		layer := figure.BarLayer{Name: level, Colors: []string{colors[j]}, Width: each, Orientation: orient}

		for i, cat := range order {
			r, ok := rowIdx[cat]
			if !ok || colIdx < 0 || ct.Values[r][colIdx] == 0 {
				continue
			}

			layer.Positions = append(layer.Positions, float64(i)+offset)
			layer.Values = append(layer.Values, ct.Values[r][colIdx])
		}

		ax.Bar(layer)
	}

	ax.SetLegend(figure.Legend{Title: hue.Column()})

	return nil
}

// stackedShares records a row-normalized crosstab as stacked bars, one
// series per column label.
func stackedShares(ax *figure.Axes, ct *frame.Crosstab, colors []string, width float64, orient figure.Orientation) {
	bases := make([]float64, len(ct.RowLabels))

	for j, label := range ct.ColLabels {
		values := ct.Column(j)

		ax.Bar(figure.BarLayer{
			Name:        label,
			Positions:   positions(len(values)),
			Values:      values,
			Bases:       append([]float64(nil), bases...),
			Colors:      []string{colors[j%len(colors)]},
			Width:       width,
			Orientation: orient,
		})

		for i, v := range values {
			bases[i] += v
		}
	}

	if orient == figure.Horizontal {
		ax.SetYCategories(ct.RowLabels)
	} else {
		ax.SetXCategories(ct.RowLabels)
	}
}

// CountOptions configures CountPlot.
type CountOptions struct {
	Hue GroupBy
	// Unordered keeps the natural category order instead of sorting by frequency.
	Unordered bool
	// LabelNames replace the hue levels in the legend.
	LabelNames []string
	// Palette colors the count bars.
	Palette string
	// Colors color the stacked hue shares.
	Colors []string
	// Width and Height size the single panel; a hue doubles the height.
	Width     float64
	Height    float64
	LegendLoc string
	// BarWidth is the width of the stacked bars.
	BarWidth float64
	// SubWidth shifts share labels left from the right edge of their bar.
	SubWidth float64
	SubSize  float64
}

func (o *CountOptions) withDefaults() CountOptions {
	var out CountOptions
	if o != nil {
		out = *o
	}

	out.Palette = orDefault(out.Palette, "plasma")
	out.Colors = orDefaultSlice(out.Colors, []string{"darkgray", "navy"})
	out.Width = orDefault(out.Width, 12)
	out.Height = orDefault(out.Height, 5)
	out.LegendLoc = orDefault(out.LegendLoc, "lower left")
	out.BarWidth = orDefault(out.BarWidth, 0.75)
	out.SubWidth = orDefault(out.SubWidth, 0.3)
	out.SubSize = orDefault(out.SubSize, 12)

	return out
}

// CountPlot draws the volumetry of feature with each bar labeled by its
// share of all rows. With a hue a second panel shows the hue shares of
// every category as stacked bars.
func CountPlot(df *frame.Frame, feature string, opts *CountOptions) (*figure.Figure, error) {
	o := opts.withDefaults()

	err := df.Require(feature)
	if err != nil {
		return nil, err
	}

	err = requireGroup(df, o.Hue)
	if err != nil {
		return nil, err
	}

	order, err := categoryOrder(df, feature, o.Unordered)
	if err != nil {
		return nil, err
	}

	ncount := float64(df.Nrow())

	if !o.Hue.Set() {
		fig := figure.New(o.Width, o.Height)

		grid, gridErr := fig.Subplots(1, 1)
		if gridErr != nil {
			return nil, gridErr
		}

		ax := grid.At(0, 0)

		err = countBars(ax, df, feature, order, GroupBy{}, o.Palette, figure.Vertical)
		if err != nil {
			return nil, err
		}

		ax.SetYLabel("Volumetry")
		FormatSpines(ax, false)
		annotateShares(ax, ncount, figure.DefaultTextSize)
		ax.SetTitle("Volumetry Analysis of "+feature, TitleColor, figure.DefaultTitleSize)

		return fig, nil
	}

	ct, err := df.Crosstab(feature, o.Hue.Column())
	if err != nil {
		return nil, err
	}

	shares := ct.Normalize()
	if !o.Unordered {
		shares = shares.Reorder(order)
	}

	fig := figure.New(o.Width, o.Height*2)

	grid, err := fig.Subplots(2, 1)
	if err != nil {
		return nil, err
	}

	counts, stacked := grid.At(0, 0), grid.At(1, 0)

	err = countBars(counts, df, feature, order, GroupBy{}, o.Palette, figure.Vertical)
	if err != nil {
		return nil, err
	}

	stackedShares(stacked, shares, o.Colors, o.BarWidth, figure.Vertical)
	stacked.SetXLabel(feature)

	annotateShares(counts, ncount, o.SubSize)

	for _, r := range stacked.BarRects() {
		stacked.Annotate(figure.Annotation{
			Text:   format.FractionPercent(r.H),
			X:      r.X + r.W - o.SubWidth,
			Y:      r.Y + r.H/2,
			HAlign: figure.AlignCenter,
			VAlign: figure.AlignCenter,
			Color:  "white",
			Bold:   true,
			Size:   o.SubSize,
		})
	}

	counts.SetTitle("Volumetry Analysis of "+feature, TitleColor, figure.DefaultTitleSize)
	counts.Title.Pad = 20
	counts.SetYLabel("Volumetry")
	stacked.SetTitle(fmt.Sprintf("Volumetry Analysis of %s by %s", feature, o.Hue.Column()), TitleColor, figure.DefaultTitleSize)
	stacked.Title.Pad = 20
	stacked.SetYLabel("Percentage")

	for _, ax := range grid.All() {
		FormatSpines(ax, false)
	}

	stacked.SetLegend(figure.Legend{Title: o.Hue.Column(), Labels: o.LabelNames, Location: o.LegendLoc})

	return fig, nil
}

// annotateShares labels each vertical bar with its share of ncount.
func annotateShares(ax *figure.Axes, ncount, size float64) {
	for _, r := range ax.BarRects() {
		ax.Annotate(figure.Annotation{
			Text:   format.Share(r.H, ncount),
			X:      r.X + r.W/2,
			Y:      r.Y + r.H,
			HAlign: figure.AlignCenter,
			VAlign: figure.AlignStart,
			Size:   size,
		})
	}
}

// SingleCountOptions configures SingleCountPlot. Exactly one of X and Y
// names the column: X draws vertical bars, Y horizontal ones.
type SingleCountOptions struct {
	X, Y string
	// Top keeps only the Top most frequent categories when positive.
	Top       int
	Unordered bool
	Hue       GroupBy
	Palette   string
}

// SingleCountPlot draws the volumetry of one column on ax, labeling every
// bar with its count and its share of all rows of df.
func SingleCountPlot(df *frame.Frame, ax *figure.Axes, opts *SingleCountOptions) error {
	var o SingleCountOptions
	if opts != nil {
		o = *opts
	}

	o.Palette = orDefault(o.Palette, "plasma")

	if (o.X == "") == (o.Y == "") {
		return invalid("exactly one of x and y must name a column")
	}

	if o.Top < 0 {
		return invalid("top must not be negative, got %d", o.Top)
	}

	col, orient := o.X, figure.Vertical
	if o.Y != "" {
		col, orient = o.Y, figure.Horizontal
	}

	err := df.Require(col)
	if err != nil {
		return err
	}

	err = requireGroup(df, o.Hue)
	if err != nil {
		return err
	}

	ncount := float64(df.Nrow())
	data := df

	if o.Top > 0 {
		data, err = df.Top(col, o.Top)
		if err != nil {
			return err
		}
	}

	order, err := categoryOrder(data, col, o.Unordered)
	if err != nil {
		return err
	}

	err = countBars(ax, data, col, order, o.Hue, o.Palette, orient)
	if err != nil {
		return err
	}

	FormatSpines(ax, false)

	for _, r := range ax.BarRects() {
		if orient == figure.Vertical {
			ax.Annotate(figure.Annotation{
				Text:   fmt.Sprintf("%d\n%s", int(r.H), format.Share(r.H, ncount)),
				X:      r.X + r.W/2,
				Y:      r.Y + r.H,
				HAlign: figure.AlignCenter,
				VAlign: figure.AlignStart,
			})

			continue
		}

		ax.Annotate(figure.Annotation{
			Text:   fmt.Sprintf("%d (%s)", int(r.W), format.Share(r.W, ncount)),
			X:      r.X + r.W,
			Y:      r.Y + r.H/2,
			HAlign: figure.AlignStart,
			VAlign: figure.AlignCenter,
		})
	}

	return nil
}

// CatplotOptions configures CatplotAnalysis.
type CatplotOptions struct {
	Hue     GroupBy
	Palette string
	Width   float64
	Height  float64
}

// CatplotAnalysis draws horizontal count bars for every column except the
// hue, each labeled with its integer count.
func CatplotAnalysis(df *frame.Frame, cols int, opts *CatplotOptions) (*figure.Figure, error) {
	var o CatplotOptions
	if opts != nil {
		o = *opts
	}

	o.Palette = orDefault(o.Palette, "viridis")
	o.Width = orDefault(o.Width, figure.DefaultWidth)
	o.Height = orDefault(o.Height, 10)

	err := requireGroup(df, o.Hue)
	if err != nil {
		return nil, err
	}

	features, err := featuresExcept(df, o.Hue)
	if err != nil {
		return nil, err
	}

	_, err = tiler.Geometry(len(features), cols)
	if err != nil {
		return nil, err
	}

	_, err = colorsFor(o.Palette, 1)
	if err != nil {
		return nil, err
	}

	labels := AnnotateBars{FontSize: figure.DefaultTextSize, Color: TitleColor, Decimals: 0}
	fig := figure.New(o.Width, o.Height)

	_, err = tiler.Tile(fig, features, cols, func(ax *figure.Axes, col string) error {
		order, orderErr := df.Order(col)
		if orderErr != nil {
			return orderErr
		}

		orderErr = countBars(ax, df, col, order, o.Hue, o.Palette, figure.Horizontal)
		if orderErr != nil {
			return orderErr
		}

		FormatSpines(ax, false)
		labels.Horizontal(ax, false)
		ax.SetTitle(col, "", PanelTitle)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return fig, nil
}

// CatPctOptions configures CatplotPercentageAnalysis.
type CatPctOptions struct {
	Palette string
	Width   float64
	Height  float64
}

// CatplotPercentageAnalysis draws, for every column except hue, the share
// of each hue level within every category as horizontal stacked bars.
func CatplotPercentageAnalysis(df *frame.Frame, hue string, cols int, opts *CatPctOptions) (*figure.Figure, error) {
	var o CatPctOptions
	if opts != nil {
		o = *opts
	}

	o.Palette = orDefault(o.Palette, "viridis")
	o.Width = orDefault(o.Width, figure.DefaultWidth)
	o.Height = orDefault(o.Height, 10)

	if hue == "" {
		return nil, invalid("a hue column is required")
	}

	err := df.Require(hue)
	if err != nil {
		return nil, err
	}

	features, err := featuresExcept(df, Hue(hue))
	if err != nil {
		return nil, err
	}

	_, err = tiler.Geometry(len(features), cols)
	if err != nil {
		return nil, err
	}

	levels, err := df.Categories(hue)
	if err != nil {
		return nil, err
	}

	colors, err := colorsFor(o.Palette, len(levels))
	if err != nil {
		return nil, err
	}

	fig := figure.New(o.Width, o.Height)

	_, err = tiler.Tile(fig, features, cols, func(ax *figure.Axes, col string) error {
		ct, ctErr := df.Crosstab(col, hue)
		if ctErr != nil {
			return ctErr
		}

		stackedShares(ax, ct.Normalize(), colors, pandasBarWidth, figure.Horizontal)
		FormatSpines(ax, false)
		ax.SetTitle(col, "", PanelTitle)
		ax.SetYLabel("")
		ax.SetLegend(figure.Legend{Title: hue})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return fig, nil
}
