package static

import (
	"fmt"
	"image/color"
	"math"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/palette"
)

// rgba resolves a color name, falling back to fallback for unknown or
// empty names.
func rgba(name string, fallback color.Color) color.Color {
	if name == "" {
		return fallback
	}

	c, err := palette.Resolve(name)
	if err != nil {
		return fallback
	}

	return c
}

func textStyle(clr color.Color, size float64, bold bool, h, v figure.Align) text.Style {
	fnt := font.From(plot.DefaultFont, vg.Length(size))
	if bold {
		fnt.Weight = xfont.WeightBold
	}

	return text.Style{
		Color:   clr,
		Font:    fnt,
		Handler: plot.DefaultTextHandler,
		XAlign:  xAlign(h),
		YAlign:  yAlign(v),
	}
}

func xAlign(a figure.Align) text.XAlignment {
	switch a {
	case figure.AlignStart:
		return text.XLeft
	case figure.AlignEnd:
		return text.XRight
	default:
		return text.XCenter
	}
}

func yAlign(a figure.Align) text.YAlignment {
	switch a {
	case figure.AlignStart:
		return text.YBottom
	case figure.AlignEnd:
		return text.YTop
	default:
		return text.YCenter
	}
}

// rect is a filled data-space rectangle.
type rect struct {
	x0, y0, x1, y1 float64
	fill           color.Color
	edge           color.Color
}

// rects draws filled rectangles in data coordinates: bars, boxes and
// heatmap cells.
type rects struct {
	items []rect
	// thumb is the legend swatch color.
	thumb color.Color
}

func (r *rects) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, it := range r.items {
		x0, x1 := trX(it.x0), trX(it.x1)
		y0, y1 := trY(it.y0), trY(it.y1)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}

		c.FillPolygon(it.fill, c.ClipPolygonXY(pts))

		if it.edge != nil {
			sty := draw.LineStyle{Color: it.edge, Width: vg.Points(0.5)}
			c.StrokeLines(sty, c.ClipLinesXY(append(pts, pts[0]))...)
		}
	}
}

func (r *rects) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)

	for _, it := range r.items {
		xmin = min(xmin, it.x0, it.x1)
		xmax = max(xmax, it.x0, it.x1)
		ymin = min(ymin, it.y0, it.y1)
		ymax = max(ymax, it.y0, it.y1)
	}

	return xmin, xmax, ymin, ymax
}

func (r *rects) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	}
	c.FillPolygon(r.thumb, c.ClipPolygonXY(pts))
}

func barRects(b *figure.BarLayer) *rects {
	out := &rects{}

	for i, r := range b.Rects() {
		if math.IsNaN(r.Value) {
			continue
		}

		out.items = append(out.items, rect{
			x0: r.X, y0: r.Y, x1: r.X + r.W, y1: r.Y + r.H,
			fill: rgba(b.Color(i), color.Black),
		})
	}

	out.thumb = rgba(b.Color(0), color.Black)

	return out
}

// segments draws straight data-space line segments.
type segments struct {
	lines [][4]float64
	style draw.LineStyle
}

func (s *segments) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, l := range s.lines {
		c.StrokeLine2(s.style, trX(l[0]), trY(l[1]), trX(l[2]), trY(l[3]))
	}
}

// boxenPlotters turns a letter-value layer into nested boxes, a median
// segment and outlier points, drawn widest box first.
func boxenPlotters(b *figure.BoxenLayer) []plot.Plotter {
	boxes := &rects{}

	for _, lb := range b.Boxes {
		half := lb.Width / 2
		r := rect{
			x0: b.Position - half, x1: b.Position + half, y0: lb.Lower, y1: lb.Upper,
			fill: rgba(lb.Color, color.Gray{Y: 0x80}),
			edge: color.Gray{Y: 0x4c},
		}

		if b.Orientation == figure.Horizontal {
			r = rect{x0: lb.Lower, x1: lb.Upper, y0: b.Position - half, y1: b.Position + half, fill: r.fill, edge: r.edge}
		}

		boxes.items = append(boxes.items, r)
	}

	// outermost box first
	for i, j := 0, len(boxes.items)-1; i < j; i, j = i+1, j-1 {
		boxes.items[i], boxes.items[j] = boxes.items[j], boxes.items[i]
	}

	if len(b.Boxes) > 0 {
		boxes.thumb = boxes.items[len(boxes.items)-1].fill
	}

	half := 0.4
	if len(b.Boxes) > 0 {
		half = b.Boxes[0].Width / 2
	}

	median := &segments{
		style: draw.LineStyle{Color: rgba(b.MedianColor, color.Black), Width: vg.Points(1.5)},
		lines: [][4]float64{{b.Position - half, b.Median, b.Position + half, b.Median}},
	}

	outliers := &markers{style: draw.GlyphStyle{Color: color.Gray{Y: 0x4c}, Radius: vg.Points(1.5), Shape: draw.RingGlyph{}}}

	for _, v := range b.Outliers {
		outliers.points = append(outliers.points, [2]float64{b.Position, v})
	}

	if b.Orientation == figure.Horizontal {
		m := median.lines[0]
		median.lines[0] = [4]float64{m[1], m[0], m[3], m[2]}

		for i, p := range outliers.points {
			outliers.points[i] = [2]float64{p[1], p[0]}
		}
	}

	return []plot.Plotter{boxes, median, outliers}
}

// markers draws glyphs at data points with one style.
type markers struct {
	points [][2]float64
	style  draw.GlyphStyle
}

func (m *markers) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, p := range m.points {
		c.DrawGlyphNoClip(m.style, vg.Point{X: trX(p[0]), Y: trY(p[1])})
	}
}

func (m *markers) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)

	for _, p := range m.points {
		xmin, xmax = min(xmin, p[0]), max(xmax, p[0])
		ymin, ymax = min(ymin, p[1]), max(ymax, p[1])
	}

	return xmin, xmax, ymin, ymax
}

func (m *markers) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(m.style, c.Center())
}

// Wedge geometry, relative to an outer radius of 1.
const (
	arcSteps      = 90
	pctDistance   = 0.6
	labelDistance = 1.1
	wedgeExtent   = 1.25
)

// wedges draws a pie or donut centered on the origin, counterclockwise
// from the positive x axis.
type wedges struct {
	layer *figure.WedgeLayer
	back  color.Color
}

func (w *wedges) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	shares := w.layer.Shares()
	start := 0.0

	at := func(r, theta float64) vg.Point {
		return vg.Point{X: trX(r * math.Cos(theta)), Y: trY(r * math.Sin(theta))}
	}

	type placed struct {
		mid   float64
		label string
		text  string
	}

	var labels []placed

	for i, share := range shares {
		sweep := 2 * math.Pi * share / 100
		steps := max(int(arcSteps*share/100), 2)
		pts := []vg.Point{at(0, 0)}

		for s := 0; s <= steps; s++ {
			pts = append(pts, at(1, start+sweep*float64(s)/float64(steps)))
		}

		c.FillPolygon(rgba(w.layer.Color(i), color.Black), pts)

		p := placed{mid: start + sweep/2}
		if i < len(w.layer.Labels) {
			p.label = w.layer.Labels[i]
		}

		if i < len(w.layer.Texts) {
			p.text = w.layer.Texts[i]
		}

		labels = append(labels, p)
		start += sweep
	}

	if w.layer.InnerRadius > 0 {
		var hole []vg.Point
		for s := range arcSteps * 4 {
			hole = append(hole, at(w.layer.InnerRadius, 2*math.Pi*float64(s)/float64(arcSteps*4)))
		}

		c.FillPolygon(w.back, hole)
	}

	for _, p := range labels {
		halign := figure.AlignStart
		if math.Cos(p.mid) < 0 {
			halign = figure.AlignEnd
		}

		c.FillText(textStyle(color.Black, figure.DefaultTextSize, false, halign, figure.AlignCenter), at(labelDistance, p.mid), p.label)
		c.FillText(textStyle(color.Black, figure.DefaultTextSize, false, figure.AlignCenter, figure.AlignCenter), at(pctDistance, p.mid), p.text)
	}
}

func (w *wedges) DataRange() (xmin, xmax, ymin, ymax float64) {
	return -wedgeExtent, wedgeExtent, -wedgeExtent, wedgeExtent
}

// Color bar geometry in heatmap cell units.
const (
	colorBarGap   = 0.3
	colorBarWidth = 0.35
	colorBarSteps = 64
)

// heatmap draws a labeled matrix with Values[0] as the top row, optional
// cell annotations and an optional color bar to the right.
type heatmap struct {
	layer *figure.HeatmapLayer
	cmap  palette.Colormap
}

func (h *heatmap) extent() (rows, cols int) {
	rows = len(h.layer.Values)
	if rows > 0 {
		cols = len(h.layer.Values[0])
	}

	return rows, cols
}

func (h *heatmap) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	lo, hi := h.layer.Bounds()
	rows, cols := h.extent()

	scale := func(v float64) float64 {
		if hi == lo {
			return 0.5
		}

		return (v - lo) / (hi - lo)
	}

	for i, row := range h.layer.Values {
		y := float64(rows - 1 - i)

		for j, v := range row {
			x := float64(j)
			if math.IsNaN(v) {
				continue
			}

			clr := rgba(h.cmap.At(scale(v)), color.White)
			pts := []vg.Point{
				{X: trX(x - 0.5), Y: trY(y - 0.5)},
				{X: trX(x + 0.5), Y: trY(y - 0.5)},
				{X: trX(x + 0.5), Y: trY(y + 0.5)},
				{X: trX(x - 0.5), Y: trY(y + 0.5)},
			}
			c.FillPolygon(clr, pts)

			if h.layer.Annotate {
				ink := color.Color(color.Black)
				if dark := scale(v) < 0.5; dark == isDarkLow(h.cmap) {
					ink = color.White
				}

				format := h.layer.Format
				if format == "" {
					format = "%.2f"
				}

				c.FillText(textStyle(ink, figure.DefaultTextSize, false, figure.AlignCenter, figure.AlignCenter),
					vg.Point{X: trX(x), Y: trY(y)}, fmt.Sprintf(format, v))
			}
		}
	}

	if !h.layer.ColorBar || rows == 0 {
		return
	}

	x0 := float64(cols) - 0.5 + colorBarGap
	x1 := x0 + colorBarWidth
	bottom, top := -0.5, float64(rows)-0.5
	step := (top - bottom) / colorBarSteps

	for s := range colorBarSteps {
		y := bottom + float64(s)*step
		clr := rgba(h.cmap.At((float64(s)+0.5)/colorBarSteps), color.White)
		c.FillPolygon(clr, []vg.Point{
			{X: trX(x0), Y: trY(y)},
			{X: trX(x1), Y: trY(y)},
			{X: trX(x1), Y: trY(y + step)},
			{X: trX(x0), Y: trY(y + step)},
		})
	}

	label := textStyle(color.Black, figure.DefaultTextSize-2, false, figure.AlignStart, figure.AlignCenter)
	c.FillText(label, vg.Point{X: trX(x1) + vg.Points(3), Y: trY(bottom)}, fmt.Sprintf("%.2f", lo))
	c.FillText(label, vg.Point{X: trX(x1) + vg.Points(3), Y: trY(top)}, fmt.Sprintf("%.2f", hi))
}

func (h *heatmap) DataRange() (xmin, xmax, ymin, ymax float64) {
	rows, cols := h.extent()
	xmax = float64(cols) - 0.5

	if h.layer.ColorBar {
		xmax += colorBarGap + colorBarWidth + 0.6
	}

	return -0.5, xmax, -0.5, float64(rows) - 0.5
}

// isDarkLow reports whether the low end of the colormap is the darker one.
func isDarkLow(cmap palette.Colormap) bool {
	lo := palette.MustResolve(cmap.At(0))
	hi := palette.MustResolve(cmap.At(1))

	return luminance(lo) < luminance(hi)
}

func luminance(c color.RGBA) float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// annotations draws recorded text in data or axes-fraction coordinates.
type annotations struct {
	items []figure.Annotation
}

func (a *annotations) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, it := range a.items {
		pt := vg.Point{X: trX(it.X), Y: trY(it.Y)}
		if it.Coords == figure.AxesCoords {
			pt = vg.Point{X: c.X(it.X), Y: c.Y(it.Y)}
		}

		c.FillText(textStyle(rgba(it.Color, color.Black), it.Size, it.Bold, it.HAlign, it.VAlign), pt, it.Text)
	}
}

// drawTexts draws axes-fraction annotations straight onto a tile canvas.
// Data coordinates fall back to the tile center.
func drawTexts(c draw.Canvas, items []figure.Annotation) {
	for _, it := range items {
		pt := c.Center()
		if it.Coords == figure.AxesCoords {
			pt = vg.Point{X: c.X(it.X), Y: c.Y(it.Y)}
		}

		c.FillText(textStyle(rgba(it.Color, color.Black), it.Size, it.Bold, it.HAlign, it.VAlign), pt, it.Text)
	}
}

// border draws the top and right spines, which gonum axes lack.
type border struct {
	top, right *figure.Spine
}

func (b *border) Plot(c draw.Canvas, _ *plot.Plot) {
	if b.top != nil && b.top.Visible {
		sty := draw.LineStyle{Color: rgba(b.top.Color, color.Black), Width: vg.Points(1)}
		c.StrokeLine2(sty, c.Min.X, c.Max.Y, c.Max.X, c.Max.Y)
	}

	if b.right != nil && b.right.Visible {
		sty := draw.LineStyle{Color: rgba(b.right.Color, color.Black), Width: vg.Points(1)}
		c.StrokeLine2(sty, c.Max.X, c.Min.Y, c.Max.X, c.Max.Y)
	}
}
