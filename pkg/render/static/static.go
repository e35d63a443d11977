// Package static renders recorded figures to raster and vector images
// with gonum/plot.
package static

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/palette"
)

// ErrNoGrid is returned for a figure whose Subplots was never called.
var ErrNoGrid = errors.New("figure has no grid")

// Format is an image encoding.
type Format string

// Formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpg"
	SVG  Format = "svg"
	PDF  Format = "pdf"
)

// Tile padding and the space reserved for a figure title.
const (
	tilePad        = 12
	figureTitlePad = 28
	figureTitlePt  = 16.0
)

// Render draws fig in the given format.
func Render(fig *figure.Figure, w io.Writer, format Format) error {
	grid := fig.Grid()
	if grid == nil {
		return ErrNoGrid
	}

	width, height := vg.Length(fig.Width)*vg.Inch, vg.Length(fig.Height)*vg.Inch

	var (
		canvas vg.CanvasSizer
		out    io.WriterTo
	)

	switch format {
	case PNG, JPEG:
		img := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(int(math.Round(fig.DPI))))
		canvas = img

		if format == PNG {
			out = vgimg.PngCanvas{Canvas: img}
		} else {
			out = vgimg.JpegCanvas{Canvas: img}
		}
	case SVG:
		c := vgsvg.New(width, height)
		canvas, out = c, c
	case PDF:
		c := vgpdf.New(width, height)
		canvas, out = c, c
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}

	dc := draw.New(canvas)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())

	drawFigure(dc, fig, grid)

	_, err := out.WriteTo(w)
	if err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}

	return nil
}

func drawFigure(dc draw.Canvas, fig *figure.Figure, grid *figure.Grid) {
	if fig.Title != "" {
		sty := textStyle(color.Black, figureTitlePt, true, figure.AlignCenter, figure.AlignEnd)
		dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - vg.Points(4)}, fig.Title)
		dc.Max.Y -= vg.Points(figureTitlePad)
	}

	tiles := draw.Tiles{
		Rows:      grid.Rows(),
		Cols:      grid.Cols(),
		PadX:      vg.Points(tilePad),
		PadY:      vg.Points(tilePad),
		PadTop:    vg.Points(tilePad / 2),
		PadBottom: vg.Points(tilePad / 2),
		PadLeft:   vg.Points(tilePad / 2),
		PadRight:  vg.Points(tilePad / 2),
	}

	for _, ax := range grid.All() {
		row, col := ax.Position()
		tile := tiles.At(dc, col, row)

		if ax.Hidden() {
			drawTexts(tile, ax.Annotations())

			continue
		}

		if ax.Equal {
			tile = square(tile)
		}

		p := buildPlot(ax)
		p.Draw(tile)
	}
}

// square shrinks c to its largest centered square.
func square(c draw.Canvas) draw.Canvas {
	size := c.Size()
	side := min(size.X, size.Y)
	dx, dy := (size.X-side)/2, (size.Y-side)/2

	c.Min.X += dx
	c.Max.X -= dx
	c.Min.Y += dy
	c.Max.Y -= dy

	return c
}

// buildPlot replays the recorded layers of one surface onto a gonum plot.
func buildPlot(ax *figure.Axes) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = rgba(ax.FaceColor, color.White)

	p.Title.Text = ax.Title.Text
	p.Title.TextStyle = textStyle(rgba(ax.Title.Color, color.Black), orSize(ax.Title.Size, figure.DefaultTitleSize), false,
		figure.AlignCenter, figure.AlignCenter)
	p.Title.Padding = vg.Points(5 + ax.Title.Pad/2)
	p.X.Label.Text = ax.XLabel
	p.Y.Label.Text = ax.YLabel

	spines := ax.Spines()
	styleAxis(&p.X, spines[figure.Bottom])
	styleAxis(&p.Y, spines[figure.Left])

	var (
		hasHeatmap bool
		legend     []legendEntry
	)

	for _, l := range ax.Layers() {
		switch layer := l.(type) {
		case *figure.BarLayer:
			r := barRects(layer)
			p.Add(r)
			legend = appendEntry(legend, layer.Name, r)
		case *figure.LineLayer:
			if line := newLine(layer); line != nil {
				p.Add(line)
				legend = appendEntry(legend, layer.Name, line)
			}
		case *figure.PointLayer:
			if m := newMarkers(layer); m != nil {
				p.Add(m)
				legend = appendEntry(legend, layer.Name, m)
			}
		case *figure.BoxenLayer:
			p.Add(boxenPlotters(layer)...)
		case *figure.WedgeLayer:
			p.Add(&wedges{layer: layer, back: rgba(ax.FaceColor, color.White)})
			p.HideAxes()
		case *figure.HeatmapLayer:
			addHeatmap(p, layer)

			hasHeatmap = true
		}
	}

	if len(ax.Annotations()) > 0 {
		p.Add(&annotations{items: ax.Annotations()})
	}

	p.Add(&border{top: &spines[figure.Top], right: &spines[figure.Right]})

	if !hasHeatmap {
		categoryTicks(&p.X, ax.XCategories)
		categoryTicks(&p.Y, ax.YCategories)
	}

	applyLimits(p, ax)

	if ax.InvertY {
		p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}

	if ax.XTicksOff {
		hideTicks(&p.X)
	}

	if ax.YTicksOff {
		hideTicks(&p.Y)
	}

	placeLegend(p, ax.Legend, legend)

	return p
}

func orSize(v, def float64) float64 {
	if v <= 0 {
		return def
	}

	return v
}

func styleAxis(a *plot.Axis, s figure.Spine) {
	a.LineStyle.Color = rgba(s.Color, color.Black)
	if !s.Visible {
		a.LineStyle.Width = 0
	}
}

func hideTicks(a *plot.Axis) {
	a.Tick.Marker = plot.ConstantTicks([]plot.Tick{})
	a.Tick.Length = 0
}

func categoryTicks(a *plot.Axis, labels []string) {
	if len(labels) == 0 {
		return
	}

	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: float64(i), Label: l}
	}

	a.Tick.Marker = plot.ConstantTicks(ticks)
	a.Min = min(a.Min, -0.5)
	a.Max = max(a.Max, float64(len(labels))-0.5)
}

// applyLimits applies fixed ranges and keeps bars anchored at zero.
// Degenerate limits are ignored.
func applyLimits(p *plot.Plot, ax *figure.Axes) {
	if ax.XLim != nil && ax.XLim.Max > ax.XLim.Min {
		p.X.Min, p.X.Max = ax.XLim.Min, ax.XLim.Max
	}

	if ax.YLim != nil && ax.YLim.Max > ax.YLim.Min {
		p.Y.Min, p.Y.Max = ax.YLim.Min, ax.YLim.Max
	}

	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		if math.IsInf(a.Min, 0) || math.IsInf(a.Max, 0) {
			a.Min, a.Max = 0, 1
		}
	}

	if p.X.Min == p.X.Max {
		p.X.Min, p.X.Max = p.X.Min-0.5, p.X.Max+0.5
	}

	if p.Y.Min == p.Y.Max {
		p.Y.Min, p.Y.Max = p.Y.Min-0.5, p.Y.Max+0.5
	}
}

func newLine(l *figure.LineLayer) *plotter.Line {
	xys := make(plotter.XYs, 0, len(l.X))

	for i := range l.X {
		if i < len(l.Y) && !math.IsNaN(l.X[i]) && !math.IsNaN(l.Y[i]) {
			xys = append(xys, plotter.XY{X: l.X[i], Y: l.Y[i]})
		}
	}

	if len(xys) == 0 {
		return nil
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		slog.Default().Debug("skipping line layer", "name", l.Name, "error", err)

		return nil
	}

	line.LineStyle.Color = rgba(l.Color, color.Black)
	line.LineStyle.Width = vg.Points(orSize(l.Width, 1))

	if l.Fill {
		line.FillColor = rgba(palette.Lighten(l.Color, 0.7), color.Gray{Y: 0xdd})
	}

	return line
}

func newMarkers(l *figure.PointLayer) *markers {
	m := &markers{style: draw.GlyphStyle{
		Color:  rgba(l.Color(0), color.Black),
		Radius: vg.Points(orSize(l.Radius, 2)),
		Shape:  draw.CircleGlyph{},
	}}

	for i := range l.X {
		if i < len(l.Y) && !math.IsNaN(l.Y[i]) {
			m.points = append(m.points, [2]float64{l.X[i], l.Y[i]})
		}
	}

	if len(m.points) == 0 {
		return nil
	}

	return m
}

func addHeatmap(p *plot.Plot, h *figure.HeatmapLayer) {
	cmap, err := palette.Lookup(h.Colormap)
	if err != nil {
		cmap, _ = palette.Lookup("viridis")
	}

	p.Add(&heatmap{layer: h, cmap: cmap})

	rows := len(h.RowLabels)
	yt := make([]plot.Tick, rows)

	for i, l := range h.RowLabels {
		yt[i] = plot.Tick{Value: float64(rows - 1 - i), Label: l}
	}

	xt := make([]plot.Tick, len(h.ColLabels))
	for j, l := range h.ColLabels {
		xt[j] = plot.Tick{Value: float64(j), Label: l}
	}

	p.X.Tick.Marker = plot.ConstantTicks(xt)
	p.Y.Tick.Marker = plot.ConstantTicks(yt)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = xAlign(figure.AlignEnd)
	p.X.Tick.Label.YAlign = yAlign(figure.AlignCenter)
}

type legendEntry struct {
	name  string
	thumb plot.Thumbnailer
}

func appendEntry(entries []legendEntry, name string, thumb plot.Thumbnailer) []legendEntry {
	if name == "" {
		return entries
	}

	return append(entries, legendEntry{name: name, thumb: thumb})
}

// placeLegend adds the legend title then one entry per named series.
// Legend labels rename the series in order.
func placeLegend(p *plot.Plot, l *figure.Legend, entries []legendEntry) {
	if l == nil {
		return
	}

	if l.Title != "" {
		p.Legend.Add(l.Title)
	}

	for i, e := range entries {
		name := e.name
		if i < len(l.Labels) {
			name = l.Labels[i]
		}

		p.Legend.Add(name, e.thumb)
	}

	switch l.Location {
	case "lower left":
		p.Legend.Left = true
	case "lower right":
	case "upper left":
		p.Legend.Top, p.Legend.Left = true, true
	default:
		p.Legend.Top = true
	}
}
