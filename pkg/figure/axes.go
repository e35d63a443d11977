package figure

// Side names one border of a surface.
type Side int

// Sides.
const (
	Bottom Side = iota
	Left
	Top
	Right
)

var sideNames = [...]string{"bottom", "left", "top", "right"}

func (s Side) String() string { return sideNames[s] }

// Spine is one border line of a surface.
type Spine struct {
	Visible bool
	Color   string
}

// Title is a surface title.
type Title struct {
	Text  string
	Color string
	Size  float64
	// Pad is extra space between the title and the plot area, in points.
	Pad float64
}

// Limits is a closed axis range.
type Limits struct {
	Min, Max float64
}

// Legend describes a surface legend. When Labels is empty the names of
// the recorded layers are used.
type Legend struct {
	Title    string
	Labels   []string
	Location string
}

// Default text styling shared by the plot helpers.
const (
	DefaultTitleSize = 14.0
	DefaultTextSize  = 10.0
	defaultSpine     = "#000000"
)

// Axes is one drawing surface of a grid.
type Axes struct {
	row, col int

	Title       Title
	XLabel      string
	YLabel      string
	XCategories []string
	YCategories []string
	XTicksOff   bool
	YTicksOff   bool
	// InvertY places the first y category at the top.
	InvertY   bool
	XLim      *Limits
	YLim      *Limits
	FaceColor string
	Legend    *Legend
	// Equal keeps one data unit the same length on both axes (pies, square heatmaps).
	Equal bool

	spines      [4]Spine
	hidden      bool
	layers      []Layer
	annotations []Annotation
}

func newAxes(row, col int) *Axes {
	ax := &Axes{row: row, col: col}
	for i := range ax.spines {
		ax.spines[i] = Spine{Visible: true, Color: defaultSpine}
	}

	return ax
}

// Position returns the grid coordinates of the surface.
func (ax *Axes) Position() (row, col int) {
	return ax.row, ax.col
}

// SetTitle sets the title text, color and size.
func (ax *Axes) SetTitle(text, color string, size float64) {
	ax.Title = Title{Text: text, Color: color, Size: size, Pad: ax.Title.Pad}
}

// SetXLabel sets the x axis label.
func (ax *Axes) SetXLabel(label string) { ax.XLabel = label }

// SetYLabel sets the y axis label.
func (ax *Axes) SetYLabel(label string) { ax.YLabel = label }

// SetXCategories labels integer x positions 0..n-1.
func (ax *Axes) SetXCategories(labels []string) { ax.XCategories = labels }

// SetYCategories labels integer y positions 0..n-1.
func (ax *Axes) SetYCategories(labels []string) { ax.YCategories = labels }

// HideXTicks removes x tick marks and labels.
func (ax *Axes) HideXTicks() { ax.XTicksOff = true }

// HideYTicks removes y tick marks and labels.
func (ax *Axes) HideYTicks() { ax.YTicksOff = true }

// SetXLim fixes the x range.
func (ax *Axes) SetXLim(lo, hi float64) { ax.XLim = &Limits{Min: lo, Max: hi} }

// SetYLim fixes the y range.
func (ax *Axes) SetYLim(lo, hi float64) { ax.YLim = &Limits{Min: lo, Max: hi} }

// SetFaceColor sets the plot area background.
func (ax *Axes) SetFaceColor(color string) { ax.FaceColor = color }

// SetLegend attaches a legend.
func (ax *Axes) SetLegend(l Legend) { ax.Legend = &l }

// Spine returns the spine on the given side for modification.
func (ax *Axes) Spine(side Side) *Spine {
	return &ax.spines[side]
}

// Spines returns a copy of all four spines indexed by Side.
func (ax *Axes) Spines() [4]Spine {
	return ax.spines
}

// Despine hides the top and right spines, plus any extra sides given.
func (ax *Axes) Despine(extra ...Side) {
	ax.spines[Top].Visible = false
	ax.spines[Right].Visible = false

	for _, s := range extra {
		ax.spines[s].Visible = false
	}
}

// Hide turns the surface off: no axes, ticks or border are drawn.
// Recorded text annotations are still drawn.
func (ax *Axes) Hide() {
	ax.hidden = true
}

// Hidden reports whether Hide was called.
func (ax *Axes) Hidden() bool {
	return ax.hidden
}

// Layers returns the recorded primitives in drawing order.
func (ax *Axes) Layers() []Layer {
	return ax.layers
}

// Annotations returns the recorded text annotations.
func (ax *Axes) Annotations() []Annotation {
	return ax.annotations
}

// Empty reports whether nothing was recorded on the surface.
func (ax *Axes) Empty() bool {
	return len(ax.layers) == 0 && len(ax.annotations) == 0
}

// Bar records a bar series.
func (ax *Axes) Bar(b BarLayer) *BarLayer {
	l := &b
	ax.layers = append(ax.layers, l)

	return l
}

// Line records a polyline.
func (ax *Axes) Line(l LineLayer) *LineLayer {
	p := &l
	ax.layers = append(ax.layers, p)

	return p
}

// Points records a point cloud.
func (ax *Axes) Points(p PointLayer) *PointLayer {
	l := &p
	ax.layers = append(ax.layers, l)

	return l
}

// Boxen records a letter-value summary.
func (ax *Axes) Boxen(b BoxenLayer) *BoxenLayer {
	l := &b
	ax.layers = append(ax.layers, l)

	return l
}

// Wedges records a pie or donut.
func (ax *Axes) Wedges(w WedgeLayer) *WedgeLayer {
	l := &w
	ax.layers = append(ax.layers, l)
	ax.Equal = true

	return l
}

// Heatmap records a labeled matrix.
func (ax *Axes) Heatmap(h HeatmapLayer) *HeatmapLayer {
	l := &h
	ax.layers = append(ax.layers, l)

	return l
}

// BarRects returns the rectangles of every recorded bar in insertion order.
func (ax *Axes) BarRects() []Rect {
	var rects []Rect

	for _, l := range ax.layers {
		if b, ok := l.(*BarLayer); ok {
			rects = append(rects, b.Rects()...)
		}
	}

	return rects
}

// Bars returns the recorded bar layers.
func (ax *Axes) Bars() []*BarLayer {
	var bars []*BarLayer

	for _, l := range ax.layers {
		if b, ok := l.(*BarLayer); ok {
			bars = append(bars, b)
		}
	}

	return bars
}
