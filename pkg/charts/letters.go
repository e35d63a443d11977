package charts

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/palette"
)

// outlierProportion is the expected share of points beyond the outermost box.
const outlierProportion = 0.007

const medianColor = "#4c4c4c"

// LetterValues summarizes a sample by nested quantile boxes.
type LetterValues struct {
	// Boxes[i] spans the quantiles 0.5^(i+2) and 1-0.5^(i+2): index 0 is
	// the interquartile range.
	Boxes    [][2]float64
	Median   float64
	Outliers []float64
}

// Depth returns the number of boxes for n points so that about 0.7% of
// them fall outside the outermost box.
func Depth(n int) int {
	if n <= 0 {
		return 1
	}

	k := int(math.Log2(float64(n))) - int(math.Log2(float64(n)*outlierProportion)) + 1

	return max(k, 1)
}

// ComputeLetterValues returns the letter-value summary of xs.
func ComputeLetterValues(xs []float64) (LetterValues, bool) {
	if len(xs) == 0 {
		return LetterValues{}, false
	}

	sorted := slices.Clone(xs)
	slices.Sort(sorted)

	k := Depth(len(sorted))
	lv := LetterValues{Median: stat.Quantile(0.5, stat.LinInterp, sorted, nil)}

	for i := range k {
		tail := math.Pow(0.5, float64(i+2))
		lv.Boxes = append(lv.Boxes, [2]float64{
			stat.Quantile(tail, stat.LinInterp, sorted, nil),
			stat.Quantile(1-tail, stat.LinInterp, sorted, nil),
		})
	}

	outer := lv.Boxes[k-1]
	for _, x := range sorted {
		if x < outer[0] || x > outer[1] {
			lv.Outliers = append(lv.Outliers, x)
		}
	}

	return lv, true
}

// drawBoxen records the letter-value boxes of xs at pos. Each deeper box
// is half as wide and lighter than the one inside it.
func drawBoxen(ax *figure.Axes, pos float64, xs []float64, color string) {
	lv, ok := ComputeLetterValues(xs)
	if !ok {
		return
	}

	shades := palette.Shades(color, len(lv.Boxes))
	boxes := make([]figure.LetterBox, len(lv.Boxes))

	for i, b := range lv.Boxes {
		boxes[i] = figure.LetterBox{
			Lower: b[0],
			Upper: b[1],
			Width: defaultWidth * math.Pow(0.5, float64(i)),
			Color: shades[i],
		}
	}

	ax.Boxen(figure.BoxenLayer{
		Position:    pos,
		Boxes:       boxes,
		Median:      lv.Median,
		MedianColor: medianColor,
		Outliers:    lv.Outliers,
	})
}
