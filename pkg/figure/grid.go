package figure

import "fmt"

// Grid is a rectangular row-major arrangement of surfaces.
// It is always two-dimensional: a single-row grid is still addressed by
// (0, col).
type Grid struct {
	rows  int
	cols  int
	cells []*Axes
}

func newGrid(rows, cols int) *Grid {
	cells := make([]*Axes, rows*cols)
	for i := range cells {
		cells[i] = newAxes(i/cols, i%cols)
	}

	return &Grid{rows: rows, cols: cols, cells: cells}
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// At returns the surface at (row, col). It panics when out of range,
// like a slice index.
func (g *Grid) At(row, col int) *Axes {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		panic(fmt.Sprintf("figure: cell (%d, %d) out of range for %dx%d grid", row, col, g.rows, g.cols))
	}

	return g.cells[row*g.cols+col]
}

// Cell returns the surface at flat row-major index i.
func (g *Grid) Cell(i int) *Axes {
	return g.cells[i]
}

// Row returns the surfaces of one row, left to right.
func (g *Grid) Row(row int) []*Axes {
	start := row * g.cols

	return g.cells[start : start+g.cols]
}

// All returns every surface in row-major order.
func (g *Grid) All() []*Axes {
	return g.cells
}

// HiddenCount returns how many surfaces are hidden.
func (g *Grid) HiddenCount() int {
	n := 0

	for _, ax := range g.cells {
		if ax.Hidden() {
			n++
		}
	}

	return n
}
