package charts

import (
	"math/rand/v2"
	"strings"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
	"github.com/Sumatoshi-tech/edaplot/pkg/tiler"
)

// stripJitter is the half-width of the uniform horizontal jitter.
const stripJitter = 0.1

// CategoryOptions configures StripPlot and BoxenPlot.
type CategoryOptions struct {
	// Hue places one category per hue value on the x axis.
	Hue     GroupBy
	Palette string
	Width   float64
	Height  float64
	// Seed fixes the strip jitter.
	Seed uint64
}

func (o *CategoryOptions) withDefaults() CategoryOptions {
	var out CategoryOptions
	if o != nil {
		out = *o
	}

	out.Palette = orDefault(out.Palette, "viridis")
	out.Width = orDefault(out.Width, figure.DefaultWidth)
	out.Height = orDefault(out.Height, figure.DefaultHeight)

	return out
}

// categoryGroup is the values of one x category.
type categoryGroup struct {
	label  string
	values []float64
}

// splitByCategory returns col grouped by the hue categories, or as one
// unnamed group.
func splitByCategory(df *frame.Frame, col string, hue GroupBy) ([]categoryGroup, error) {
	if !hue.Set() {
		xs, err := df.NonNullFloats(col)
		if err != nil {
			return nil, err
		}

		return []categoryGroup{{values: xs}}, nil
	}

	cats, err := df.Categories(hue.Column())
	if err != nil {
		return nil, err
	}

	groups := make([]categoryGroup, len(cats))

	for i, cat := range cats {
		sub, subErr := df.Where(hue.Column(), cat)
		if subErr != nil {
			return nil, subErr
		}

		xs, subErr := sub.NonNullFloats(col)
		if subErr != nil {
			return nil, subErr
		}

		groups[i] = categoryGroup{label: cat, values: xs}
	}

	return groups, nil
}

type groupDrawer func(ax *figure.Axes, pos float64, g categoryGroup, color string)

// categoryPanels tiles one categorical panel per feature.
func categoryPanels(df *frame.Frame, features []string, cols int, o CategoryOptions, draw groupDrawer) (*figure.Figure, error) {
	err := validateTiling(df, features, cols, o.Hue)
	if err != nil {
		return nil, err
	}

	err = requireNumeric(df, features...)
	if err != nil {
		return nil, err
	}

	_, err = colorsFor(o.Palette, 1)
	if err != nil {
		return nil, err
	}

	fig := figure.New(o.Width, o.Height)

	_, err = tiler.Tile(fig, features, cols, func(ax *figure.Axes, col string) error {
		groups, splitErr := splitByCategory(df, col, o.Hue)
		if splitErr != nil {
			return splitErr
		}

		colors, _ := colorsFor(o.Palette, len(groups))
		labels := make([]string, len(groups))

		for i, g := range groups {
			draw(ax, float64(i), g, colors[i])
			labels[i] = g.label
		}

		if o.Hue.Set() {
			ax.SetXCategories(labels)
			ax.SetXLabel(o.Hue.Column())
		} else {
			ax.HideXTicks()
		}

		ax.SetYLabel(col)
		FormatSpines(ax, false)
		ax.SetTitle("Feature: "+strings.ToUpper(col), TitleColor, figure.DefaultTitleSize)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return fig, nil
}

// StripPlot draws the jittered points of each feature, split by the hue
// categories when given.
func StripPlot(df *frame.Frame, features []string, cols int, opts *CategoryOptions) (*figure.Figure, error) {
	o := opts.withDefaults()
	rng := rand.New(rand.NewPCG(o.Seed, o.Seed))

	return categoryPanels(df, features, cols, o, func(ax *figure.Axes, pos float64, g categoryGroup, color string) {
		xs := make([]float64, len(g.values))
		for i := range xs {
			xs[i] = pos + (rng.Float64()*2-1)*stripJitter
		}

		ax.Points(figure.PointLayer{Name: g.label, X: xs, Y: g.values, Colors: []string{color}, Radius: 2.5})
	})
}

// BoxenPlot draws the letter-value boxes of each feature, split by the hue
// categories when given.
func BoxenPlot(df *frame.Frame, features []string, cols int, opts *CategoryOptions) (*figure.Figure, error) {
	o := opts.withDefaults()

	return categoryPanels(df, features, cols, o, func(ax *figure.Axes, pos float64, g categoryGroup, color string) {
		drawBoxen(ax, pos, g.values, color)
	})
}
