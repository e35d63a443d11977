// Package frame provides the read-only tabular data source consumed by the
// plot helpers: column access, null counts, value frequencies, filtering,
// crosstabs, grouping and correlation.
package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Sentinel errors.
var (
	ErrMissingColumn     = errors.New("missing column")
	ErrNotNumeric        = errors.New("column is not numeric")
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrEmptyInput        = errors.New("empty input")
)

// Kind is the storage type of a column.
type Kind string

// Column kinds.
const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
)

// Numeric reports whether the kind holds numbers.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Frame is an immutable table of named columns.
type Frame struct {
	df dataframe.DataFrame
}

// FromDataFrame wraps a gota dataframe.
func FromDataFrame(df dataframe.DataFrame) (*Frame, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("load dataframe: %w", df.Err)
	}

	return &Frame{df: df}, nil
}

// DataFrame returns the underlying gota dataframe.
func (f *Frame) DataFrame() dataframe.DataFrame {
	return f.df
}

// Nrow returns the number of rows.
func (f *Frame) Nrow() int {
	return f.df.Nrow()
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	return f.df.Names()
}

// Has reports whether the column exists.
func (f *Frame) Has(col string) bool {
	for _, name := range f.df.Names() {
		if name == col {
			return true
		}
	}

	return false
}

// Require returns ErrMissingColumn for the first absent column.
func (f *Frame) Require(cols ...string) error {
	for _, col := range cols {
		if !f.Has(col) {
			return fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	return nil
}

func (f *Frame) series(col string) (series.Series, error) {
	err := f.Require(col)
	if err != nil {
		return series.Series{}, err
	}

	return f.df.Col(col), nil
}

// Kind returns the storage type of a column.
func (f *Frame) Kind(col string) (Kind, error) {
	s, err := f.series(col)
	if err != nil {
		return "", err
	}

	switch s.Type() {
	case series.Int:
		return KindInt, nil
	case series.Float:
		return KindFloat, nil
	case series.Bool:
		return KindBool, nil
	default:
		return KindString, nil
	}
}

// Records returns the column as text with an NA mask. Floats are printed
// in their shortest form.
func (f *Frame) Records(col string) ([]string, []bool, error) {
	s, err := f.series(col)
	if err != nil {
		return nil, nil, err
	}

	n := s.Len()
	values := make([]string, n)
	na := make([]bool, n)

	for i := range n {
		e := s.Elem(i)
		if e.IsNA() {
			na[i] = true

			continue
		}

		if s.Type() == series.Float {
			values[i] = strconv.FormatFloat(e.Float(), 'f', -1, 64)
		} else {
			values[i] = e.String()
		}
	}

	return values, na, nil
}

// Floats returns a numeric column with NaN for nulls.
func (f *Frame) Floats(col string) ([]float64, error) {
	kind, err := f.Kind(col)
	if err != nil {
		return nil, err
	}

	if !kind.Numeric() {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotNumeric, col, kind)
	}

	return f.df.Col(col).Float(), nil
}

// NonNullFloats returns a numeric column with nulls removed.
func (f *Frame) NonNullFloats(col string) ([]float64, error) {
	xs, err := f.Floats(col)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(xs))

	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}

	return out, nil
}

// NullCount is the number of nulls in one column.
type NullCount struct {
	Column string
	Count  int
}

// NullCount returns how many values of a column are null.
func (f *Frame) NullCount(col string) (int, error) {
	_, na, err := f.Records(col)
	if err != nil {
		return 0, err
	}

	n := 0

	for _, isNA := range na {
		if isNA {
			n++
		}
	}

	return n, nil
}

// NullCounts returns the null count of every column in column order.
func (f *Frame) NullCounts() []NullCount {
	names := f.Names()
	counts := make([]NullCount, len(names))

	for i, name := range names {
		n, _ := f.NullCount(name)
		counts[i] = NullCount{Column: name, Count: n}
	}

	return counts
}
