package figure

import "math"

// Orientation is the direction bars and boxes grow in.
type Orientation int

// Orientations.
const (
	Vertical Orientation = iota
	Horizontal
)

// Layer is one recorded primitive of a surface.
// The concrete types are *BarLayer, *LineLayer, *PointLayer, *BoxenLayer,
// *WedgeLayer and *HeatmapLayer.
type Layer interface {
	layer()
}

// BarLayer is a series of bars, one per category position.
type BarLayer struct {
	// Name labels the series in legends. Empty names are not listed.
	Name      string
	Positions []float64
	Values    []float64
	// Bases offsets each bar for stacking. Nil means zero.
	Bases []float64
	// Colors holds one color per bar, or a single color for all bars.
	Colors      []string
	Width       float64
	Orientation Orientation
}

func (*BarLayer) layer() {}

// Color returns the color of bar i.
func (b *BarLayer) Color(i int) string {
	if len(b.Colors) == 0 {
		return ""
	}

	return b.Colors[i%len(b.Colors)]
}

// Base returns the starting value of bar i.
func (b *BarLayer) Base(i int) float64 {
	if i < len(b.Bases) {
		return b.Bases[i]
	}

	return 0
}

// Rect is the data-space rectangle of one bar, with (X, Y) its lower-left
// corner.
type Rect struct {
	X, Y, W, H float64
	// Value is the bar length, which is W for horizontal and H for vertical bars.
	Value float64
}

// Rects returns the geometry of every bar in the layer.
func (b *BarLayer) Rects() []Rect {
	rects := make([]Rect, len(b.Values))

	for i, v := range b.Values {
		pos := b.Positions[i]
		base := b.Base(i)

		if b.Orientation == Horizontal {
			rects[i] = Rect{X: base, Y: pos - b.Width/2, W: v, H: b.Width, Value: v}
		} else {
			rects[i] = Rect{X: pos - b.Width/2, Y: base, W: b.Width, H: v, Value: v}
		}
	}

	return rects
}

// LineLayer is a polyline, optionally filled down to zero.
type LineLayer struct {
	Name  string
	X, Y  []float64
	Color string
	Fill  bool
	Width float64
}

func (*LineLayer) layer() {}

// PointLayer is a set of unconnected points.
type PointLayer struct {
	Name   string
	X, Y   []float64
	Colors []string
	Radius float64
}

func (*PointLayer) layer() {}

// Color returns the color of point i.
func (p *PointLayer) Color(i int) string {
	if len(p.Colors) == 0 {
		return ""
	}

	return p.Colors[i%len(p.Colors)]
}

// LetterBox is one nested box of a letter-value plot.
type LetterBox struct {
	Lower, Upper float64
	Width        float64
	Color        string
}

// BoxenLayer is the letter-value summary of one category.
type BoxenLayer struct {
	Position float64
	// Boxes[0] is the interquartile box; later boxes cover deeper tails.
	Boxes       []LetterBox
	Median      float64
	MedianColor string
	Outliers    []float64
	Orientation Orientation
}

func (*BoxenLayer) layer() {}

// WedgeLayer is a pie; a positive InnerRadius turns it into a donut.
// Radii are relative to an outer radius of 1.
type WedgeLayer struct {
	Values      []float64
	Labels      []string
	Colors      []string
	Texts       []string
	InnerRadius float64
}

func (*WedgeLayer) layer() {}

// Color returns the color of wedge i.
func (w *WedgeLayer) Color(i int) string {
	if len(w.Colors) == 0 {
		return ""
	}

	return w.Colors[i%len(w.Colors)]
}

// Shares returns each wedge's share of the total in percent.
func (w *WedgeLayer) Shares() []float64 {
	var total float64
	for _, v := range w.Values {
		total += v
	}

	shares := make([]float64, len(w.Values))
	if total == 0 {
		return shares
	}

	for i, v := range w.Values {
		shares[i] = 100 * v / total
	}

	return shares
}

// HeatmapLayer is a labeled matrix of colored cells.
type HeatmapLayer struct {
	RowLabels []string
	ColLabels []string
	// Values[0] is the top row.
	Values   [][]float64
	Colormap string
	Annotate bool
	// Format is a fmt verb for annotations, e.g. "%.2f".
	Format   string
	ColorBar bool
	Square   bool
}

func (*HeatmapLayer) layer() {}

// Bounds returns the minimum and maximum finite values of the matrix.
func (h *HeatmapLayer) Bounds() (lo, hi float64) {
	first := true

	for _, row := range h.Values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}

			if first {
				lo, hi = v, v
				first = false

				continue
			}

			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	return lo, hi
}
