package charts

import (
	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
	"github.com/Sumatoshi-tech/edaplot/pkg/tiler"
)

// DistOptions configures DistPlot.
type DistOptions struct {
	Hue GroupBy
	// Colors holds one color per hue class, in value-count order.
	Colors []string
	// Hist draws a density histogram under each curve.
	Hist   bool
	Width  float64
	Height float64
}

func (o *DistOptions) withDefaults() DistOptions {
	var out DistOptions
	if o != nil {
		out = *o
	}

	out.Colors = orDefaultSlice(out.Colors, []string{"crimson", "darkslateblue"})
	out.Width = orDefault(out.Width, figure.DefaultWidth)
	out.Height = orDefault(out.Height, figure.DefaultHeight)

	return out
}

// DistPlot draws one density panel per feature. With a hue, each panel
// holds one curve per class, ordered by class frequency.
func DistPlot(df *frame.Frame, features []string, cols int, opts *DistOptions) (*figure.Figure, error) {
	o := opts.withDefaults()

	err := validateTiling(df, features, cols, o.Hue)
	if err != nil {
		return nil, err
	}

	err = requireNumeric(df, features...)
	if err != nil {
		return nil, err
	}

	classes, err := hueClasses(df, o.Hue)
	if err != nil {
		return nil, err
	}

	fig := figure.New(o.Width, o.Height)

	_, err = tiler.Tile(fig, features, cols, func(ax *figure.Axes, col string) error {
		drawErr := drawClassDensities(ax, df, col, o.Hue, classes, o.Colors, o.Colors[0], o.Hist)
		if drawErr != nil {
			return drawErr
		}

		ax.SetTitle("Feature: "+col, TitleColor, figure.DefaultTitleSize)
		ax.HideYTicks()
		ax.Despine(figure.Left)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return fig, nil
}

// NumplotOptions configures NumplotAnalysis.
type NumplotOptions struct {
	Hue GroupBy
	// ColorSequence colors ungrouped panels by their grid column.
	ColorSequence []string
	// ColorHue colors the hue classes of grouped panels.
	ColorHue []string
	Hist     bool
}

func (o *NumplotOptions) withDefaults() NumplotOptions {
	var out NumplotOptions
	if o != nil {
		out = *o
	}

	out.ColorSequence = orDefaultSlice(out.ColorSequence, []string{"darkslateblue", "mediumseagreen", "darkslateblue"})
	out.ColorHue = orDefaultSlice(out.ColorHue, []string{"darkslateblue", "crimson"})

	return out
}

// Numplot panel size in inches.
const (
	numplotPanelWidth  = 5.0
	numplotPanelHeight = 4.5
)

// NumplotAnalysis draws a density panel for every column except the hue.
// The figure is sized 5 by 4.5 inches per panel.
func NumplotAnalysis(df *frame.Frame, cols int, opts *NumplotOptions) (*figure.Figure, error) {
	o := opts.withDefaults()

	err := requireGroup(df, o.Hue)
	if err != nil {
		return nil, err
	}

	features, err := featuresExcept(df, o.Hue)
	if err != nil {
		return nil, err
	}

	rows, err := tiler.Geometry(len(features), cols)
	if err != nil {
		return nil, err
	}

	err = requireNumeric(df, features...)
	if err != nil {
		return nil, err
	}

	classes, err := hueClasses(df, o.Hue)
	if err != nil {
		return nil, err
	}

	fig := figure.New(float64(cols)*numplotPanelWidth, float64(rows)*numplotPanelHeight)

	_, err = tiler.Tile(fig, features, cols, func(ax *figure.Axes, col string) error {
		_, j := ax.Position()
		color := o.ColorSequence[j%len(o.ColorSequence)]

		drawErr := drawClassDensities(ax, df, col, o.Hue, classes, o.ColorHue, color, o.Hist)
		if drawErr != nil {
			return drawErr
		}

		if o.Hue.Set() {
			ax.SetTitle(col, "", PanelTitle)
		} else {
			ax.SetTitle(col, color, PanelTitle)
		}

		FormatSpines(ax, false)
		ax.Despine(figure.Left)

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ax := range fig.Grid().All() {
		ax.HideYTicks()
	}

	return fig, nil
}

// drawClassDensities draws col as one curve, or one curve per hue class.
func drawClassDensities(ax *figure.Axes, df *frame.Frame, col string, hue GroupBy, classes, classColors []string, color string, hist bool) error {
	if !hue.Set() {
		xs, err := df.NonNullFloats(col)
		if err != nil {
			return err
		}

		drawDistribution(ax, xs, color, "", hist)

		return nil
	}

	for i, class := range classes {
		sub, err := df.Where(hue.Column(), class)
		if err != nil {
			return err
		}

		xs, err := sub.NonNullFloats(col)
		if err != nil {
			return err
		}

		drawDistribution(ax, xs, classColors[i%len(classColors)], class, hist)
	}

	ax.SetLegend(figure.Legend{Location: "best"})

	return nil
}

// hueClasses returns the hue values by descending frequency.
func hueClasses(df *frame.Frame, hue GroupBy) ([]string, error) {
	if !hue.Set() {
		return nil, nil
	}

	return df.Order(hue.Column())
}

// validateTiling checks the column count, the features and the hue before
// any surface is created.
func validateTiling(df *frame.Frame, features []string, cols int, hue GroupBy) error {
	_, err := tiler.Geometry(len(features), cols)
	if err != nil {
		return err
	}

	err = df.Require(features...)
	if err != nil {
		return err
	}

	return requireGroup(df, hue)
}
