// Package tiler lays out one sub-plot per feature on a row-major grid of
// surfaces and hides the cells left over.
package tiler

import (
	"fmt"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
)

// RenderFunc draws one feature onto its surface.
type RenderFunc func(ax *figure.Axes, feature string) error

// Placement records which feature landed in which cell.
type Placement struct {
	Row     int
	Col     int
	Feature string
}

// Layout describes a completed tiling pass.
type Layout struct {
	Rows       int
	Cols       int
	Placements []Placement
	// Hidden lists the flat row-major indices of the surplus cells.
	Hidden []int
}

// Geometry returns the number of rows needed to fit n features into cols
// columns.
func Geometry(n, cols int) (int, error) {
	if cols <= 0 {
		return 0, fmt.Errorf("%w: column count must be positive, got %d", figure.ErrInvalidConfiguration, cols)
	}

	if n <= 0 {
		return 0, fmt.Errorf("%w: no features to tile", figure.ErrInvalidConfiguration)
	}

	return (n + cols - 1) / cols, nil
}

// Tile allocates a fresh grid on fig sized for features, calls render once
// per feature in row-major order, then hides every remaining cell.
// Configuration is validated before any surface is created.
func Tile(fig *figure.Figure, features []string, cols int, render RenderFunc) (Layout, error) {
	rows, err := Geometry(len(features), cols)
	if err != nil {
		return Layout{}, err
	}

	grid, err := fig.Subplots(rows, cols)
	if err != nil {
		return Layout{}, err
	}

	layout := Layout{
		Rows:       rows,
		Cols:       cols,
		Placements: make([]Placement, 0, len(features)),
	}

	row, col := 0, 0

	for _, feature := range features {
		renderErr := render(grid.At(row, col), feature)
		if renderErr != nil {
			return Layout{}, fmt.Errorf("render feature %q: %w", feature, renderErr)
		}

		layout.Placements = append(layout.Placements, Placement{Row: row, Col: col, Feature: feature})

		col++
		if col == cols {
			col = 0
			row++
		}
	}

	for k := len(features); k < rows*cols; k++ {
		grid.Cell(k).Hide()
		layout.Hidden = append(layout.Hidden, k)
	}

	return layout, nil
}
