package figure

// Coords selects the coordinate system of an annotation.
type Coords int

// Coordinate systems.
const (
	// DataCoords positions text in data units.
	DataCoords Coords = iota
	// AxesCoords positions text as a fraction of the plot area, (0,0) bottom-left.
	AxesCoords
)

// Align is a text anchor along one axis.
type Align int

// Anchors. Horizontal uses Start/Center/End as left/center/right;
// vertical uses them as bottom/center/top.
const (
	AlignCenter Align = iota
	AlignStart
	AlignEnd
)

// Annotation is text drawn at a point.
type Annotation struct {
	Text   string
	X, Y   float64
	Coords Coords
	HAlign Align
	VAlign Align
	Color  string
	Size   float64
	Bold   bool
}

// Annotate records text in data coordinates.
func (ax *Axes) Annotate(a Annotation) {
	if a.Size == 0 {
		a.Size = DefaultTextSize
	}

	ax.annotations = append(ax.annotations, a)
}

// Text records text in axes-fraction coordinates.
func (ax *Axes) Text(x, y float64, text string, size float64) {
	ax.Annotate(Annotation{
		Text:   text,
		X:      x,
		Y:      y,
		Coords: AxesCoords,
		HAlign: AlignCenter,
		VAlign: AlignStart,
		Size:   size,
	})
}
