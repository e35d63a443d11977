package charts

import (
	"fmt"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
)

// Direction selects positively or negatively correlated features.
type Direction string

// Directions.
const (
	Positive Direction = "positive"
	Negative Direction = "negative"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Positive, Negative:
		return d, nil
	default:
		return "", invalid("unknown correlation direction %q", s)
	}
}

// CorrelationOptions configures TargetCorrelationMatrix. Use
// DefaultCorrelationOptions and adjust it; a nil value selects the defaults.
type CorrelationOptions struct {
	NVars     int
	Direction Direction
	// Format is a fmt verb for cell annotations.
	Format   string
	Colormap string
	ColorBar bool
	Annotate bool
	Square   bool
}

// DefaultCorrelationOptions returns the top 10 positive correlates drawn on
// an annotated square YlGnBu heatmap with a color bar.
func DefaultCorrelationOptions() *CorrelationOptions {
	return &CorrelationOptions{
		NVars:     10,
		Direction: Positive,
		Format:    "%.2f",
		Colormap:  "YlGnBu",
		ColorBar:  true,
		Annotate:  true,
		Square:    true,
	}
}

// TargetCorrelationMatrix draws the correlation matrix of label and its n
// most positively or negatively correlated numeric features. The negative
// view always lists label first and uses the magma colormap.
func TargetCorrelationMatrix(df *frame.Frame, label string, ax *figure.Axes, opts *CorrelationOptions) error {
	if opts == nil {
		opts = DefaultCorrelationOptions()
	}

	o := *opts
	o.Format = orDefault(o.Format, "%.2f")
	o.Colormap = orDefault(o.Colormap, "YlGnBu")
	o.Direction = orDefault(o.Direction, Positive)

	if o.NVars <= 0 {
		return invalid("feature count must be positive, got %d", o.NVars)
	}

	err := requireNumeric(df, label)
	if err != nil {
		return err
	}

	corr, err := df.Corr()
	if err != nil {
		return err
	}

	var (
		cols  []string
		title string
	)

	switch o.Direction {
	case Positive:
		cols, err = corr.NLargest(o.NVars+1, label)
		title = fmt.Sprintf("Top %d Features - Positive Correlation with the Target", o.NVars)
	case Negative:
		var smallest []string

		smallest, err = corr.NSmallest(o.NVars+1, label)
		cols = append([]string{label}, dropLast(smallest, 1)...)
		title = fmt.Sprintf("Top %d Features - Negative Correlation with the Target", o.NVars)
		o.Colormap = "magma"
	default:
		return invalid("unknown correlation direction %q", o.Direction)
	}

	if err != nil {
		return err
	}

	_, err = colorsFor(o.Colormap, 1)
	if err != nil {
		return err
	}

	values, err := df.CorrCoef(cols...)
	if err != nil {
		return err
	}

	ax.Heatmap(figure.HeatmapLayer{
		RowLabels: cols,
		ColLabels: cols,
		Values:    values,
		Colormap:  o.Colormap,
		Annotate:  o.Annotate,
		Format:    o.Format,
		ColorBar:  o.ColorBar,
		Square:    o.Square,
	})

	if o.Square {
		ax.Equal = true
	}

	ax.SetTitle(title, TitleColor, figure.DefaultTitleSize)
	ax.Title.Pad = 20

	return nil
}
