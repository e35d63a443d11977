package charts

import (
	"log/slog"
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/palette"
)

const (
	kdeGridSize = 100
	kdeCut      = 3.0
	maxHistBins = 50
	histAlpha   = 0.6
)

// Density is a kernel density estimate evaluated on an even grid.
type Density struct {
	X, Y      []float64
	Bandwidth float64
}

// EstimateDensity fits a Gaussian KDE with Scott's bandwidth and evaluates
// it over the data range extended by three bandwidths on each side.
// It reports false when the sample is too small or has no spread.
func EstimateDensity(xs []float64) (Density, bool) {
	if len(xs) < 2 {
		return Density{}, false
	}

	sample := stats.Sample{Xs: xs}

	bw := stats.BandwidthScott(sample)
	if bw <= 0 || math.IsNaN(bw) || math.IsInf(bw, 0) {
		return Density{}, false
	}

	kde := stats.KDE{Sample: sample, Bandwidth: bw}
	lo, hi := floats.Min(xs)-kdeCut*bw, floats.Max(xs)+kdeCut*bw

	grid := make([]float64, kdeGridSize)
	floats.Span(grid, lo, hi)

	ys := make([]float64, kdeGridSize)
	for i, x := range grid {
		ys[i] = kde.PDF(x)
	}

	return Density{X: grid, Y: ys, Bandwidth: bw}, true
}

// Histogram is a density-normalized histogram.
type Histogram struct {
	Edges   []float64
	Density []float64
}

// histBins picks the Freedman-Diaconis bin count, capped at 50.
func histBins(sorted []float64) int {
	n := float64(len(sorted))
	iqr := stat.Quantile(0.75, stat.LinInterp, sorted, nil) - stat.Quantile(0.25, stat.LinInterp, sorted, nil)

	h := 2 * iqr / math.Cbrt(n)
	if h == 0 {
		return min(max(int(math.Sqrt(n)), 1), maxHistBins)
	}

	bins := int(math.Ceil((sorted[len(sorted)-1] - sorted[0]) / h))

	return min(max(bins, 1), maxHistBins)
}

// EstimateHistogram bins xs and scales the counts so the bar areas sum to one.
func EstimateHistogram(xs []float64) (Histogram, bool) {
	if len(xs) == 0 {
		return Histogram{}, false
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	bins := histBins(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := make([]float64, bins+1)
	floats.Span(edges, lo, hi)

	// The last divider must lie strictly above the maximum.
	dividers := slices.Clone(edges)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	width := (hi - lo) / float64(bins)
	total := float64(len(sorted))

	density := make([]float64, bins)
	for i, c := range counts {
		density[i] = c / (total * width)
	}

	return Histogram{Edges: edges, Density: density}, true
}

// drawDistribution records a KDE curve of xs, optionally over a density
// histogram, in the given color.
func drawDistribution(ax *figure.Axes, xs []float64, color, name string, hist bool) {
	if hist {
		if h, ok := EstimateHistogram(xs); ok {
			centers := make([]float64, len(h.Density))
			for i := range centers {
				centers[i] = (h.Edges[i] + h.Edges[i+1]) / 2
			}

			ax.Bar(figure.BarLayer{
				Positions: centers,
				Values:    h.Density,
				Colors:    []string{palette.Lighten(color, histAlpha)},
				Width:     h.Edges[1] - h.Edges[0],
			})
		}
	}

	d, ok := EstimateDensity(xs)
	if !ok {
		slog.Default().Debug("skipping density estimate", "series", name, "n", len(xs))

		return
	}

	ax.Line(figure.LineLayer{Name: name, X: d.X, Y: d.Y, Color: color, Width: 1.5})
}
