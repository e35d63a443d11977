// Package figure models a composed figure as a grid of drawing surfaces.
//
// Surfaces record chart primitives (bars, lines, points, boxes, wedges,
// heatmaps and text) without drawing anything. Backends under pkg/render
// replay the recorded primitives into images or HTML.
package figure

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration reports a layout or option value that cannot
// produce a figure, such as a non-positive column count.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Default figure dimensions.
const (
	DefaultWidth  = 16.0
	DefaultHeight = 12.0
	DefaultDPI    = 96.0
)

// Figure is the top-level container of one rendered image.
type Figure struct {
	// Width and Height are in inches.
	Width  float64
	Height float64
	// DPI applies to raster outputs only.
	DPI float64
	// Title is an optional figure-level title.
	Title string

	grid *Grid
}

// New creates a figure with the given size in inches.
// Non-positive sizes fall back to the defaults.
func New(width, height float64) *Figure {
	if width <= 0 {
		width = DefaultWidth
	}

	if height <= 0 {
		height = DefaultHeight
	}

	return &Figure{Width: width, Height: height, DPI: DefaultDPI}
}

// Subplots allocates a fresh rows×cols grid of surfaces, replacing any
// previous grid of the figure.
func (f *Figure) Subplots(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidConfiguration, rows, cols)
	}

	f.grid = newGrid(rows, cols)

	return f.grid, nil
}

// Grid returns the figure's grid, or nil if Subplots was never called.
func (f *Figure) Grid() *Grid {
	return f.grid
}
