// Package charts holds the exploratory plotting helpers. Each helper reads
// a frame, validates its configuration and columns, then records chart
// primitives on figure surfaces. Multi-panel helpers lay their panels out
// with the tiler.
package charts

import (
	"fmt"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
	"github.com/Sumatoshi-tech/edaplot/pkg/palette"
)

// Shared styling.
const (
	SpineColor   = "#CCCCCC"
	BackColor    = "#FFFFFF"
	TitleColor   = "dimgrey"
	PanelTitle   = 12.0
	defaultWidth = 0.8
)

// GroupBy optionally splits a plot by a categorical column. The zero
// value means no grouping.
type GroupBy struct {
	col string
}

// Hue groups by col.
func Hue(col string) GroupBy {
	return GroupBy{col: col}
}

// Column returns the grouping column, or "" when not grouped.
func (g GroupBy) Column() string { return g.col }

// Set reports whether a grouping column was given.
func (g GroupBy) Set() bool { return g.col != "" }

// FormatSpines applies the light border style: grey bottom and left
// spines, no top spine, and a grey or white right spine.
func FormatSpines(ax *figure.Axes, rightBorder bool) {
	ax.Spine(figure.Bottom).Color = SpineColor
	ax.Spine(figure.Left).Color = SpineColor
	ax.Spine(figure.Top).Visible = false

	if rightBorder {
		ax.Spine(figure.Right).Color = SpineColor
	} else {
		ax.Spine(figure.Right).Color = BackColor
	}

	ax.SetFaceColor(BackColor)
}

// AnnotateBars labels every bar of a surface with its length.
type AnnotateBars struct {
	FontSize float64
	Color    string
	Decimals int
}

// DefaultAnnotateBars returns size 10 black labels with two decimals.
func DefaultAnnotateBars() AnnotateBars {
	return AnnotateBars{FontSize: figure.DefaultTextSize, Color: "black", Decimals: 2}
}

// Horizontal labels horizontal bars at their end, or at their middle when
// centered.
func (a AnnotateBars) Horizontal(ax *figure.Axes, centered bool) {
	div, halign := 1.0, figure.AlignStart
	if centered {
		div, halign = 2, figure.AlignCenter
	}

	for _, r := range ax.BarRects() {
		ax.Annotate(figure.Annotation{
			Text:   a.label(r.W),
			X:      r.X + r.W/div,
			Y:      r.Y + r.H/2,
			HAlign: halign,
			VAlign: figure.AlignCenter,
			Color:  a.Color,
			Size:   a.FontSize,
		})
	}
}

// Vertical labels vertical bars on top, or at their middle when centered.
func (a AnnotateBars) Vertical(ax *figure.Axes, centered bool) {
	div, valign := 1.0, figure.AlignStart
	if centered {
		div, valign = 2, figure.AlignCenter
	}

	for _, r := range ax.BarRects() {
		ax.Annotate(figure.Annotation{
			Text:   a.label(r.H),
			X:      r.X + r.W/2,
			Y:      r.Y + r.H/div,
			HAlign: figure.AlignCenter,
			VAlign: valign,
			Color:  a.Color,
			Size:   a.FontSize,
		})
	}
}

func (a AnnotateBars) label(v float64) string {
	return fmt.Sprintf("%.*f", max(a.Decimals, 0), v)
}

// invalid wraps figure.ErrInvalidConfiguration.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", figure.ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func requireNumeric(df *frame.Frame, cols ...string) error {
	for _, col := range cols {
		kind, err := df.Kind(col)
		if err != nil {
			return err
		}

		if !kind.Numeric() {
			return fmt.Errorf("%w: %q is %s", frame.ErrNotNumeric, col, kind)
		}
	}

	return nil
}

func requireGroup(df *frame.Frame, g GroupBy) error {
	if !g.Set() {
		return nil
	}

	return df.Require(g.Column())
}

// featuresExcept returns every column of df except the grouping column.
func featuresExcept(df *frame.Frame, g GroupBy) ([]string, error) {
	if !g.Set() {
		return df.Names(), nil
	}

	rest, err := df.Drop(g.Column())
	if err != nil {
		return nil, err
	}

	return rest.Names(), nil
}

func colorsFor(name string, n int) ([]string, error) {
	colors, err := palette.Colors(name, n)
	if err != nil {
		return nil, invalid("%v", err)
	}

	return colors, nil
}

func positions(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}

	return out
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}

	return v
}

func orDefaultSlice[T any](v, def []T) []T {
	if len(v) == 0 {
		return def
	}

	return v
}
