package charts

import (
	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/format"
	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
)

// Donut text sizes.
const (
	donutCenterSize = 20.0
	donutTitle      = "Donut Chart"
)

// DonutOptions configures DonutPlot.
type DonutOptions struct {
	// LabelNames replace the category names, in value-count order.
	LabelNames []string
	// Text is drawn at the center of the ring.
	Text   string
	Colors []string
	// CircleRadius is the radius of the hole relative to the pie.
	CircleRadius float64
	Title        string
	// DropLast removes the given number of least frequent categories.
	DropLast int
}

func (o *DonutOptions) withDefaults() DonutOptions {
	var out DonutOptions
	if o != nil {
		out = *o
	}

	out.Colors = orDefaultSlice(out.Colors, []string{"crimson", "navy"})
	out.CircleRadius = orDefault(out.CircleRadius, 0.8)
	out.Title = orDefault(out.Title, donutTitle)

	return out
}

// DonutPlot draws the value counts of col as a ring labeled with the share
// and count of each category.
func DonutPlot(df *frame.Frame, col string, ax *figure.Axes, opts *DonutOptions) error {
	o := opts.withDefaults()

	if o.DropLast < 0 {
		return invalid("drop count must not be negative, got %d", o.DropLast)
	}

	if o.CircleRadius < 0 || o.CircleRadius >= 1 {
		return invalid("circle radius must be in [0, 1), got %g", o.CircleRadius)
	}

	counts, err := df.ValueCounts(col)
	if err != nil {
		return err
	}

	values := make([]float64, len(counts))
	labels := make([]string, len(counts))

	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = c.Value
	}

	if len(o.LabelNames) > 0 {
		labels = o.LabelNames
	}

	values = dropLast(values, o.DropLast)
	labels = dropLast(labels, o.DropLast)

	wedges := figure.WedgeLayer{
		Values:      values,
		Labels:      labels,
		Colors:      o.Colors,
		InnerRadius: o.CircleRadius,
	}

	autopct := format.Autopct(values)
	for _, share := range wedges.Shares() {
		wedges.Texts = append(wedges.Texts, autopct(share))
	}

	ax.Wedges(wedges)
	ax.Annotate(figure.Annotation{
		Text:   o.Text,
		HAlign: figure.AlignCenter,
		VAlign: figure.AlignCenter,
		Size:   donutCenterSize,
		Bold:   true,
	})
	ax.SetTitle(o.Title, TitleColor, figure.DefaultTitleSize)

	return nil
}

// dropLast removes the last n elements; n beyond the length empties s.
func dropLast[T any](s []T, n int) []T {
	if n <= 0 {
		return s
	}

	if n >= len(s) {
		return s[:0]
	}

	return s[:len(s)-n]
}
