// Package palette resolves color names and samples named colormaps.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Sentinel errors.
var (
	ErrUnknownPalette = errors.New("unknown palette")
	ErrUnknownColor   = errors.New("unknown color")
)

// reversedSuffix selects the reversed variant of a colormap, e.g. "plasma_r".
const reversedSuffix = "_r"

// Colormap is an ordered list of color stops.
type Colormap struct {
	Name string
	// Stops are evenly spaced over [0, 1] for sequential maps.
	Stops []string
	// Qualitative maps are cycled instead of interpolated.
	Qualitative bool
}

var colormaps = map[string]Colormap{
	"viridis": {Name: "viridis", Stops: []string{
		"#440154", "#472c7a", "#3b518b", "#2c718e", "#21908d",
		"#27ad81", "#5cc863", "#aadc32", "#fde725",
	}},
	"plasma": {Name: "plasma", Stops: []string{
		"#0d0887", "#4c02a1", "#7e03a8", "#a92395", "#cc4778",
		"#e56b5d", "#f89441", "#fdc328", "#f0f921",
	}},
	"magma": {Name: "magma", Stops: []string{
		"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a",
		"#e55064", "#fb8761", "#fec287", "#fcfdbf",
	}},
	"YlGnBu": {Name: "YlGnBu", Stops: []string{
		"#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4",
		"#1d91c0", "#225ea8", "#253494", "#081d58",
	}},
	"muted": {Name: "muted", Qualitative: true, Stops: []string{
		"#4878d0", "#ee854a", "#6acc64", "#d65f5f", "#956cb4",
		"#8c613c", "#dc7ec0", "#797979", "#d5bb67", "#82c6e2",
	}},
}

// Names returns the registered colormap names, sorted.
func Names() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Lookup returns the colormap registered under name. A "_r" suffix returns
// the map with its stops reversed.
func Lookup(name string) (Colormap, error) {
	base, reversed := strings.CutSuffix(name, reversedSuffix)

	cm, ok := colormaps[base]
	if !ok {
		return Colormap{}, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}

	if reversed {
		stops := slices.Clone(cm.Stops)
		slices.Reverse(stops)
		cm = Colormap{Name: name, Stops: stops, Qualitative: cm.Qualitative}
	}

	return cm, nil
}

// Reversed returns the name of the reversed variant of name, toggling the
// "_r" suffix: "plasma" becomes "plasma_r" and "plasma_r" becomes "plasma".
func Reversed(name string) string {
	if base, ok := strings.CutSuffix(name, reversedSuffix); ok {
		return base
	}

	return name + reversedSuffix
}

// At returns the color at t in [0, 1], interpolating between stops.
func (c Colormap) At(t float64) string {
	if len(c.Stops) == 0 {
		return ""
	}

	t = min(max(t, 0), 1)
	if c.Qualitative {
		return c.Stops[min(int(t*float64(len(c.Stops))), len(c.Stops)-1)]
	}

	pos := t * float64(len(c.Stops)-1)
	lo := int(pos)

	if lo >= len(c.Stops)-1 {
		return c.Stops[len(c.Stops)-1]
	}

	a, _ := colorful.Hex(c.Stops[lo])
	b, _ := colorful.Hex(c.Stops[lo+1])

	return a.BlendRgb(b, pos-float64(lo)).Clamped().Hex()
}

// Sample returns n colors. Sequential maps are sampled at the interior
// points of an even split of [0, 1]; qualitative maps are cycled.
func (c Colormap) Sample(n int) []string {
	out := make([]string, max(n, 0))

	for i := range out {
		if c.Qualitative {
			out[i] = c.Stops[i%len(c.Stops)]

			continue
		}

		out[i] = c.At(float64(i+1) / float64(n+1))
	}

	return out
}

// Colors samples n colors from the named colormap.
func Colors(name string, n int) ([]string, error) {
	cm, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return cm.Sample(n), nil
}

// Cycle repeats colors until n are available.
func Cycle(colors []string, n int) []string {
	if len(colors) == 0 {
		return nil
	}

	out := make([]string, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}

	return out
}

// Resolve converts a color name ("crimson"), a hex code ("#CCCCCC", "#ccc")
// or an empty string (black) to an RGBA value.
func Resolve(name string) (color.RGBA, error) {
	if name == "" {
		return color.RGBA{A: 0xff}, nil
	}

	if strings.HasPrefix(name, "#") {
		return parseHex(name)
	}

	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}

	return c, nil
}

// MustResolve is Resolve with black for unknown colors.
func MustResolve(name string) color.RGBA {
	c, err := Resolve(name)
	if err != nil {
		return color.RGBA{A: 0xff}
	}

	return c
}

// Hex resolves a color and returns it as "#rrggbb".
func Hex(name string) (string, error) {
	c, err := Resolve(name)
	if err != nil {
		return "", err
	}

	cf, _ := colorful.MakeColor(c)

	return cf.Hex(), nil
}

func parseHex(s string) (color.RGBA, error) {
	if len(s) == 4 {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	r, g, b := c.RGB255()

	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Lighten blends a color toward white by t in [0, 1].
func Lighten(name string, t float64) string {
	c := MustResolve(name)
	cf, _ := colorful.MakeColor(c)
	if t <= 0 {
		return cf.Hex()
	}

	white := colorful.Color{R: 1, G: 1, B: 1}

	return cf.BlendLab(white, min(max(t, 0), 1)).Clamped().Hex()
}

// Shades returns k colors from base (index 0) toward white, used for
// nested letter-value boxes.
func Shades(base string, k int) []string {
	out := make([]string, max(k, 0))
	for i := range out {
		out[i] = Lighten(base, float64(i)/float64(k+1))
	}

	return out
}
