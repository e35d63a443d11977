package frame

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CorrMatrix is a labeled symmetric correlation matrix.
type CorrMatrix struct {
	Names  []string
	Values [][]float64
}

// NumericNames returns the names of int and float columns in column order.
func (f *Frame) NumericNames() []string {
	var names []string

	for _, name := range f.Names() {
		kind, _ := f.Kind(name)
		if kind.Numeric() {
			names = append(names, name)
		}
	}

	return names
}

// Corr computes Pearson correlations between every pair of numeric columns
// using the rows where both values are present.
func (f *Frame) Corr() (*CorrMatrix, error) {
	names := f.NumericNames()
	cols := make([][]float64, len(names))

	for i, name := range names {
		xs, err := f.Floats(name)
		if err != nil {
			return nil, err
		}

		cols[i] = xs
	}

	values := make([][]float64, len(names))
	for i := range values {
		values[i] = make([]float64, len(names))
	}

	for i := range names {
		for j := i; j < len(names); j++ {
			r := pairwiseCorrelation(cols[i], cols[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrMatrix{Names: names, Values: values}, nil
}

func pairwiseCorrelation(x, y []float64) float64 {
	var xs, ys []float64

	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}

		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	if len(xs) < 2 {
		return math.NaN()
	}

	// A constant column has no defined correlation.
	if floats.Max(xs) == floats.Min(xs) || floats.Max(ys) == floats.Min(ys) {
		return math.NaN()
	}

	return stat.Correlation(xs, ys, nil)
}

func (m *CorrMatrix) index(label string) (int, error) {
	i := slices.Index(m.Names, label)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q is not a numeric column", ErrMissingColumn, label)
	}

	return i, nil
}

// Column returns the correlations of every column with label.
func (m *CorrMatrix) Column(label string) ([]float64, error) {
	j, err := m.index(label)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(m.Names))
	for i := range m.Names {
		out[i] = m.Values[i][j]
	}

	return out, nil
}

// NLargest returns up to n column names with the highest correlation to
// label. NaN correlations are skipped; ties keep column order.
func (m *CorrMatrix) NLargest(n int, label string) ([]string, error) {
	return m.rank(n, label, func(a, b float64) int { return cmp.Compare(b, a) })
}

// NSmallest returns up to n column names with the lowest correlation to label.
func (m *CorrMatrix) NSmallest(n int, label string) ([]string, error) {
	return m.rank(n, label, cmp.Compare[float64])
}

func (m *CorrMatrix) rank(n int, label string, order func(a, b float64) int) ([]string, error) {
	col, err := m.Column(label)
	if err != nil {
		return nil, err
	}

	var idx []int

	for i, v := range col {
		if !math.IsNaN(v) {
			idx = append(idx, i)
		}
	}

	slices.SortStableFunc(idx, func(a, b int) int { return order(col[a], col[b]) })

	if n < len(idx) {
		idx = idx[:max(n, 0)]
	}

	names := make([]string, len(idx))
	for i, k := range idx {
		names[i] = m.Names[k]
	}

	return names, nil
}

// CorrCoef computes the correlation matrix of the given numeric columns over
// all rows. A column containing any null yields NaN in its row and column.
func (f *Frame) CorrCoef(cols ...string) ([][]float64, error) {
	k := len(cols)
	if k == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrEmptyInput)
	}

	n := f.Nrow()
	out := make([][]float64, k)

	for i := range out {
		out[i] = make([]float64, k)
	}

	data := make([]float64, n*k)

	for j, col := range cols {
		xs, err := f.Floats(col)
		if err != nil {
			return nil, err
		}

		for i, x := range xs {
			data[i*k+j] = x
		}
	}

	if n < 2 {
		for i := range out {
			for j := range out[i] {
				out[i][j] = math.NaN()
			}
		}

		return out, nil
	}

	var sym mat.SymDense

	stat.CorrelationMatrix(&sym, mat.NewDense(n, k, data), nil)

	for i := range k {
		for j := range k {
			out[i][j] = sym.At(i, j)
		}
	}

	return out, nil
}
