package plotpage

import (
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/palette"
)

// Echarts layout constants.
const (
	pieOuterRadius  = 70
	heatmapStops    = 7
	heatmapRotate   = 45
	annotationRound = 100
	symbolSize      = 6
	emptyValue      = "-"
)

// surfaceKind is the echarts family a surface maps to.
type surfaceKind int

const (
	kindEmpty surfaceKind = iota
	kindBar
	kindValue
	kindBoxen
	kindPie
	kindHeatmap
)

// classify picks the chart family for the layers of a surface. Pies and
// heatmaps win over everything else; bars become a category chart only
// when their axis carries category labels and no lines share the surface.
func classify(ax *figure.Axes) surfaceKind {
	var bars, values, boxen bool

	for _, l := range ax.Layers() {
		switch l.(type) {
		case *figure.WedgeLayer:
			return kindPie
		case *figure.HeatmapLayer:
			return kindHeatmap
		case *figure.BoxenLayer:
			boxen = true
		case *figure.BarLayer:
			bars = true
		case *figure.LineLayer, *figure.PointLayer:
			values = true
		}
	}

	switch {
	case boxen:
		return kindBoxen
	case bars && !values && len(barCategories(ax)) > 0:
		return kindBar
	case bars || values:
		return kindValue
	default:
		return kindEmpty
	}
}

func horizontalBars(ax *figure.Axes) bool {
	for _, b := range ax.Bars() {
		if b.Orientation == figure.Horizontal {
			return true
		}
	}

	return false
}

func barCategories(ax *figure.Axes) []string {
	if horizontalBars(ax) {
		return ax.YCategories
	}

	return ax.XCategories
}

// cssColor converts a color name to a hex code echarts understands.
// Unknown names pass through unchanged.
func cssColor(name string) string {
	if name == "" {
		return ""
	}

	hex, err := palette.Hex(name)
	if err != nil {
		return name
	}

	return hex
}

func globalOpts(co *ChartOpts, ax *figure.Axes) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(co.Init()),
		charts.WithTitleOpts(co.Title(ax.Title.Text, cssColor(ax.Title.Color))),
		charts.WithLegendOpts(co.Legend(ax.Legend != nil)),
		charts.WithGridOpts(co.Grid()),
	}
}

func seriesName(ax *figure.Axes, i int, name string) string {
	if ax.Legend != nil && i < len(ax.Legend.Labels) {
		return ax.Legend.Labels[i]
	}

	return name
}

// buildChart maps one surface to an echarts chart, or nil when the
// surface records nothing drawable.
func buildChart(co *ChartOpts, ax *figure.Axes) Renderable {
	switch classify(ax) {
	case kindBar:
		return buildBarChart(co, ax)
	case kindValue:
		return buildValueChart(co, ax)
	case kindBoxen:
		return buildBoxPlot(co, ax)
	case kindPie:
		return buildPie(co, ax)
	case kindHeatmap:
		return buildHeatMap(co, ax)
	default:
		return nil
	}
}

// buildBarChart draws bars on a category axis. Bars are binned to the
// nearest category index; several layers on one index are dodged by echarts.
func buildBarChart(co *ChartOpts, ax *figure.Axes) *charts.Bar {
	labels := barCategories(ax)
	horizontal := horizontalBars(ax)

	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOpts(co, ax)...)

	catAxisX := co.XAxis(ax.XLabel, "category", !ax.XTicksOff)
	valAxisY := co.YAxis(ax.YLabel, "value", !ax.YTicksOff)

	if horizontal {
		valAxisX := co.XAxis(ax.XLabel, "value", !ax.XTicksOff)
		catAxisY := co.YAxis(ax.YLabel, "category", !ax.YTicksOff)
		catAxisY.Inverse = opts.Bool(ax.InvertY)
		applyXLim(&valAxisX, ax.XLim)

		bar.SetGlobalOptions(charts.WithXAxisOpts(valAxisX), charts.WithYAxisOpts(catAxisY))
	} else {
		applyYLim(&valAxisY, ax.YLim)

		bar.SetGlobalOptions(charts.WithXAxisOpts(catAxisX), charts.WithYAxisOpts(valAxisY))
	}

	bar.SetXAxis(labels)

	showLabels := len(ax.Annotations()) > 0

	for i, layer := range ax.Bars() {
		data := make([]opts.BarData, len(labels))
		for k := range data {
			data[k] = opts.BarData{Value: emptyValue}
		}

		for j, v := range layer.Values {
			idx := int(math.Round(layer.Positions[j]))
			if idx < 0 || idx >= len(data) || math.IsNaN(v) {
				continue
			}

			d := opts.BarData{Value: v}
			if len(layer.Colors) > 1 {
				d.ItemStyle = &opts.ItemStyle{Color: cssColor(layer.Color(j))}
			}

			data[idx] = d
		}

		seriesOpts := []charts.SeriesOpts{
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(showLabels), Position: labelPosition(horizontal), Color: co.TextColor()}),
		}

		if len(layer.Colors) == 1 {
			seriesOpts = append(seriesOpts, charts.WithItemStyleOpts(opts.ItemStyle{Color: cssColor(layer.Colors[0])}))
		}

		if len(layer.Bases) > 0 {
			seriesOpts = append(seriesOpts, charts.WithBarChartOpts(opts.BarChart{Stack: "stack"}))
		}

		bar.AddSeries(seriesName(ax, i, layer.Name), data, seriesOpts...)
	}

	if horizontal {
		bar.XYReversal()
	}

	return bar
}

func labelPosition(horizontal bool) string {
	if horizontal {
		return "right"
	}

	return "top"
}

func applyXLim(a *opts.XAxis, l *figure.Limits) {
	if l != nil && l.Max > l.Min {
		a.Min, a.Max = l.Min, l.Max
	}
}

func applyYLim(a *opts.YAxis, l *figure.Limits) {
	if l != nil && l.Max > l.Min {
		a.Min, a.Max = l.Min, l.Max
	}
}

// buildValueChart draws lines, points and numeric bars on two value axes.
// Numeric bars become filled polylines through the bar tops.
func buildValueChart(co *ChartOpts, ax *figure.Axes) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOpts(co, ax)...)

	xAxis := co.XAxis(ax.XLabel, "value", !ax.XTicksOff)
	yAxis := co.YAxis(ax.YLabel, "value", !ax.YTicksOff)
	yAxis.Inverse = opts.Bool(ax.InvertY)
	applyXLim(&xAxis, ax.XLim)
	applyYLim(&yAxis, ax.YLim)

	line.SetGlobalOptions(charts.WithXAxisOpts(xAxis), charts.WithYAxisOpts(yAxis))

	var scatter *charts.Scatter

	for i, l := range ax.Layers() {
		switch layer := l.(type) {
		case *figure.BarLayer:
			line.AddSeries(seriesName(ax, i, layer.Name), barPolyline(layer),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: cssColor(layer.Color(0))}),
				charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.4)}),
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			)
		case *figure.LineLayer:
			seriesOpts := []charts.SeriesOpts{
				charts.WithItemStyleOpts(opts.ItemStyle{Color: cssColor(layer.Color)}),
				charts.WithLineStyleOpts(opts.LineStyle{Color: cssColor(layer.Color)}),
				charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			}

			if layer.Fill {
				seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.3)}))
			}

			line.AddSeries(seriesName(ax, i, layer.Name), xyLine(layer.X, layer.Y), seriesOpts...)
		case *figure.PointLayer:
			if scatter == nil {
				scatter = charts.NewScatter()
			}

			scatter.AddSeries(seriesName(ax, i, layer.Name), xyPoints(layer.X, layer.Y),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: cssColor(layer.Color(0))}))
		}
	}

	if scatter != nil {
		line.Overlap(scatter)
	}

	return line
}

func barPolyline(b *figure.BarLayer) []opts.LineData {
	data := make([]opts.LineData, 0, len(b.Values))

	for j, v := range b.Values {
		if math.IsNaN(v) {
			continue
		}

		data = append(data, opts.LineData{Value: []any{b.Positions[j], v + b.Base(j)}})
	}

	return data
}

func xyLine(xs, ys []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(xs))

	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}

		data = append(data, opts.LineData{Value: []any{xs[i], ys[i]}})
	}

	return data
}

func xyPoints(xs, ys []float64) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(xs))

	for i := range xs {
		if i >= len(ys) || math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}

		data = append(data, opts.ScatterData{Value: []any{xs[i], ys[i]}, SymbolSize: symbolSize})
	}

	return data
}

// buildBoxPlot draws each letter-value layer as a box spanning its
// outermost letter values with the interquartile box as the hinges.
func buildBoxPlot(co *ChartOpts, ax *figure.Axes) *charts.BoxPlot {
	var layers []*figure.BoxenLayer

	horizontal := false

	for _, l := range ax.Layers() {
		if b, ok := l.(*figure.BoxenLayer); ok {
			layers = append(layers, b)
			horizontal = horizontal || b.Orientation == figure.Horizontal
		}
	}

	labels := ax.XCategories
	if horizontal {
		labels = ax.YCategories
	}

	if len(labels) == 0 {
		labels = make([]string, len(layers))
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(globalOpts(co, ax)...)

	if horizontal {
		catAxis := co.YAxis(ax.YLabel, "category", !ax.YTicksOff)
		catAxis.Data = labels

		box.SetGlobalOptions(
			charts.WithXAxisOpts(co.XAxis(ax.XLabel, "value", !ax.XTicksOff)),
			charts.WithYAxisOpts(catAxis),
		)
	} else {
		box.SetGlobalOptions(
			charts.WithXAxisOpts(co.XAxis(ax.XLabel, "category", !ax.XTicksOff)),
			charts.WithYAxisOpts(co.YAxis(ax.YLabel, "value", !ax.YTicksOff)),
		)
		box.SetXAxis(labels)
	}

	data := make([]opts.BoxPlotData, len(labels))
	for i := range data {
		data[i] = opts.BoxPlotData{Value: []any{}}
	}

	var outliers []opts.ScatterData

	for _, b := range layers {
		idx := int(math.Round(b.Position))
		if idx < 0 || idx >= len(data) || len(b.Boxes) == 0 {
			continue
		}

		inner, outer := b.Boxes[0], b.Boxes[len(b.Boxes)-1]
		data[idx] = opts.BoxPlotData{Value: []float64{outer.Lower, inner.Lower, b.Median, inner.Upper, outer.Upper}}

		for _, o := range b.Outliers {
			point := []any{idx, o}
			if horizontal {
				point = []any{o, idx}
			}

			outliers = append(outliers, opts.ScatterData{Value: point, SymbolSize: symbolSize})
		}
	}

	var color string
	if len(layers) > 0 && len(layers[0].Boxes) > 0 {
		color = cssColor(layers[0].Boxes[0].Color)
	}

	box.AddSeries("boxen", data, charts.WithItemStyleOpts(opts.ItemStyle{BorderColor: co.TextColor(), Color: color}))

	if len(outliers) > 0 {
		scatter := charts.NewScatter()
		scatter.AddSeries("outliers", outliers, charts.WithItemStyleOpts(opts.ItemStyle{Color: co.TextColor()}))
		box.Overlap(scatter)
	}

	return box
}

// buildPie draws the first wedge layer; a positive inner radius yields a ring.
func buildPie(co *ChartOpts, ax *figure.Axes) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(co.Init()),
		charts.WithTitleOpts(co.Title(ax.Title.Text, cssColor(ax.Title.Color))),
		charts.WithLegendOpts(co.Legend(ax.Legend != nil)),
	)

	var w *figure.WedgeLayer

	for _, l := range ax.Layers() {
		if layer, ok := l.(*figure.WedgeLayer); ok {
			w = layer

			break
		}
	}

	data := make([]opts.PieData, len(w.Values))

	for i, v := range w.Values {
		name := strconv.Itoa(i)
		if i < len(w.Labels) {
			name = w.Labels[i]
		}

		data[i] = opts.PieData{Name: name, Value: v, ItemStyle: &opts.ItemStyle{Color: cssColor(w.Color(i))}}
	}

	inner := int(math.Round(w.InnerRadius * pieOuterRadius))

	pie.AddSeries("share", data).SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}\n{d}%",
			Color:     co.TextColor(),
		}),
		charts.WithPieChartOpts(opts.PieChart{
			Radius: []string{strconv.Itoa(inner) + "%", strconv.Itoa(pieOuterRadius) + "%"},
		}),
	)

	return pie
}

// buildHeatMap draws the first heatmap layer with Values[0] as the top row.
func buildHeatMap(co *ChartOpts, ax *figure.Axes) *charts.HeatMap {
	var h *figure.HeatmapLayer

	for _, l := range ax.Layers() {
		if layer, ok := l.(*figure.HeatmapLayer); ok {
			h = layer

			break
		}
	}

	cmap, err := palette.Lookup(h.Colormap)
	if err != nil {
		cmap, _ = palette.Lookup("viridis")
	}

	lo, hi := h.Bounds()
	if hi <= lo {
		hi = lo + 1
	}

	rows := len(h.RowLabels)
	yLabels := make([]string, rows)

	for i, l := range h.RowLabels {
		yLabels[rows-1-i] = l
	}

	xAxis := co.XAxis(ax.XLabel, "category", !ax.XTicksOff)
	xAxis.SplitArea = &opts.SplitArea{Show: opts.Bool(true)}
	xAxis.AxisLabel.Rotate = heatmapRotate
	xAxis.AxisLabel.Interval = "0"

	yAxis := co.YAxis(ax.YLabel, "category", !ax.YTicksOff)
	yAxis.Data = yLabels
	yAxis.SplitArea = &opts.SplitArea{Show: opts.Bool(true)}
	yAxis.SplitLine = nil

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(globalOpts(co, ax)...)
	hm.SetGlobalOptions(
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(h.ColorBar),
			Calculable: opts.Bool(false),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: cmap.Sample(heatmapStops)},
			Orient:     "vertical",
			Right:      "0",
			Top:        "center",
		}),
	)
	hm.SetXAxis(h.ColLabels)

	var data []opts.HeatMapData

	for i, row := range h.Values {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}

			data = append(data, opts.HeatMapData{Value: []any{j, rows - 1 - i, math.Round(v*annotationRound) / annotationRound}})
		}
	}

	hm.AddSeries("matrix", data, charts.WithLabelOpts(opts.Label{
		Show:     opts.Bool(h.Annotate),
		Position: "inside",
		Color:    co.TextColor(),
		FontSize: labelFontSize,
	}))

	return hm
}
