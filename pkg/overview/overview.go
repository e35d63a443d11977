// Package overview summarizes the columns of a frame: null counts and
// rates, storage types, category counts and, optionally, the Pearson
// correlation of every column with a target.
package overview

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
)

// ErrUnknownSortKey is returned when SortBy names no overview column.
var ErrUnknownSortKey = errors.New("unknown sort key")

// Overview column names.
const (
	ColFeature     = "feature"
	ColQtdNull     = "qtd_null"
	ColPercentNull = "percent_null"
	ColDtype       = "dtype"
	ColQtdCat      = "qtd_cat"
	ColTargetCorr  = "target_pearson_corr"
)

// Storage type names.
const (
	dtypeObject  = "object"
	dtypeInt64   = "int64"
	dtypeFloat64 = "float64"
	dtypeBool    = "bool"
)

// Options configures Build.
type Options struct {
	// Corr adds the correlation of every column with Label.
	Corr  bool
	Label string
	// SortBy is the overview column sorted on, descending. Defaults to qtd_null.
	SortBy string
	// ThreshPercentNull and ThreshCorrLabel are carried on the table for
	// Table.Filter. Build does not apply them.
	ThreshPercentNull float64
	ThreshCorrLabel   float64
}

// Row describes one column of the source frame.
type Row struct {
	Feature     string
	QtdNull     int
	PercentNull float64
	Dtype       string
	QtdCat      int
	// TargetCorr is NaN for non-numeric columns and when not computed.
	TargetCorr float64
}

// Thresholds filter overview rows.
type Thresholds struct {
	PercentNull float64
	CorrLabel   float64
}

// Table is a sorted column overview.
type Table struct {
	Rows []Row
	// HasCorr reports whether the target correlation column was computed.
	HasCorr    bool
	Thresholds Thresholds
}

// Build computes the overview of every column of df, sorted descending by
// opts.SortBy with NaN last and ties kept in column order.
func Build(df *frame.Frame, opts *Options) (*Table, error) {
	var o Options
	if opts != nil {
		o = *opts
	}

	if o.SortBy == "" {
		o.SortBy = ColQtdNull
	}

	if !slices.Contains(Columns(o.Corr), o.SortBy) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, o.SortBy)
	}

	var corr map[string]float64

	if o.Corr {
		var err error

		corr, err = targetCorrelations(df, o.Label)
		if err != nil {
			return nil, err
		}
	}

	nrow := df.Nrow()
	rows := make([]Row, 0, len(df.Names()))

	for _, nc := range df.NullCounts() {
		dtype, qtdCat, err := describe(df, nc)
		if err != nil {
			return nil, err
		}

		row := Row{
			Feature:     nc.Column,
			QtdNull:     nc.Count,
			PercentNull: math.NaN(),
			Dtype:       dtype,
			QtdCat:      qtdCat,
			TargetCorr:  math.NaN(),
		}

		if nrow > 0 {
			row.PercentNull = float64(nc.Count) / float64(nrow)
		}

		if r, ok := corr[nc.Column]; ok {
			row.TargetCorr = r
		}

		rows = append(rows, row)
	}

	slices.SortStableFunc(rows, func(a, b Row) int {
		return compareDesc(a, b, o.SortBy)
	})

	return &Table{
		Rows:       rows,
		HasCorr:    o.Corr,
		Thresholds: Thresholds{PercentNull: o.ThreshPercentNull, CorrLabel: o.ThreshCorrLabel},
	}, nil
}

// Columns returns the overview column names in display order.
func Columns(withCorr bool) []string {
	cols := []string{ColFeature, ColQtdNull, ColPercentNull, ColDtype, ColQtdCat}
	if withCorr {
		cols = append(cols, ColTargetCorr)
	}

	return cols
}

// Filter returns the rows with percent_null above the null threshold and,
// when correlations were computed, target_pearson_corr above the
// correlation threshold.
func (t *Table) Filter(th Thresholds) *Table {
	out := &Table{HasCorr: t.HasCorr, Thresholds: th}

	for _, r := range t.Rows {
		if !(r.PercentNull > th.PercentNull) {
			continue
		}

		if t.HasCorr && !(r.TargetCorr > th.CorrLabel) {
			continue
		}

		out.Rows = append(out.Rows, r)
	}

	return out
}

// FilterConfigured applies the thresholds recorded by Build.
func (t *Table) FilterConfigured() *Table {
	return t.Filter(t.Thresholds)
}

func targetCorrelations(df *frame.Frame, label string) (map[string]float64, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: correlation requested without a label column", frame.ErrMissingColumn)
	}

	kind, err := df.Kind(label)
	if err != nil {
		return nil, err
	}

	if !kind.Numeric() {
		return nil, fmt.Errorf("%w: label %q is %s", frame.ErrNotNumeric, label, kind)
	}

	m, err := df.Corr()
	if err != nil {
		return nil, err
	}

	col, err := m.Column(label)
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(col))
	for i, name := range m.Names {
		out[name] = col[i]
	}

	return out, nil
}

// describe returns the storage type name and the category count of a column.
// Integer columns holding nulls are reported as float64 and boolean columns
// holding nulls as object.
func describe(df *frame.Frame, nc frame.NullCount) (string, int, error) {
	kind, err := df.Kind(nc.Column)
	if err != nil {
		return "", 0, err
	}

	switch kind {
	case frame.KindInt:
		if nc.Count > 0 {
			return dtypeFloat64, 0, nil
		}

		return dtypeInt64, 0, nil
	case frame.KindFloat:
		return dtypeFloat64, 0, nil
	case frame.KindBool:
		if nc.Count == 0 {
			return dtypeBool, 0, nil
		}
	}

	counts, err := df.ValueCounts(nc.Column)
	if err != nil {
		return "", 0, err
	}

	return dtypeObject, len(counts), nil
}

func compareDesc(a, b Row, key string) int {
	switch key {
	case ColFeature:
		return cmp.Compare(b.Feature, a.Feature)
	case ColDtype:
		return cmp.Compare(b.Dtype, a.Dtype)
	case ColQtdNull:
		return cmp.Compare(b.QtdNull, a.QtdNull)
	case ColQtdCat:
		return cmp.Compare(b.QtdCat, a.QtdCat)
	case ColPercentNull:
		return descNaNLast(a.PercentNull, b.PercentNull)
	default:
		return descNaNLast(a.TargetCorr, b.TargetCorr)
	}
}

func descNaNLast(a, b float64) int {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	case math.IsNaN(b):
		return -1
	default:
		return cmp.Compare(b, a)
	}
}
