package terminal

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Color represents a status color.
type Color int

// Color constants.
const (
	ColorNone Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorCyan
	ColorGray
)

var attributes = map[Color]color.Attribute{
	ColorGreen:  color.FgGreen,
	ColorYellow: color.FgYellow,
	ColorRed:    color.FgRed,
	ColorCyan:   color.FgCyan,
	ColorGray:   color.FgHiBlack,
}

// Colorize applies color to text. If NoColor is true, returns text unchanged.
func (c Config) Colorize(text string, col Color) string {
	attr, ok := attributes[col]
	if c.NoColor || !ok {
		return text
	}

	painter := color.New(attr)
	painter.EnableColor()

	return painter.Sprint(text)
}

// Printf writes a colored line to w.
func (c Config) Printf(w io.Writer, col Color, format string, args ...any) {
	fmt.Fprintln(w, c.Colorize(fmt.Sprintf(format, args...), col))
}

// Success writes a green status line.
func (c Config) Success(w io.Writer, format string, args ...any) {
	c.Printf(w, ColorGreen, format, args...)
}

// Warn writes a yellow status line.
func (c Config) Warn(w io.Writer, format string, args ...any) {
	c.Printf(w, ColorYellow, format, args...)
}

// Note writes a gray status line.
func (c Config) Note(w io.Writer, format string, args ...any) {
	c.Printf(w, ColorGray, format, args...)
}

// ColorForShare returns the color for a share in [0, 1] where higher is worse,
// such as the fraction of missing values of a column.
func ColorForShare(share float64) Color {
	switch {
	case share >= ShareThresholdBad:
		return ColorRed
	case share >= ShareThresholdFair:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// Share thresholds for color assignment.
const (
	ShareThresholdBad  = 0.5
	ShareThresholdFair = 0.1
)
