package frame

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ValueCount is the frequency of one distinct value.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts returns the distinct non-null values of a column by
// descending frequency. Ties keep first-appearance order.
func (f *Frame) ValueCounts(col string) ([]ValueCount, error) {
	values, na, err := f.Records(col)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)

	var counts []ValueCount

	for i, v := range values {
		if na[i] {
			continue
		}

		pos, seen := index[v]
		if !seen {
			index[v] = len(counts)
			counts = append(counts, ValueCount{Value: v})
			pos = len(counts) - 1
		}

		counts[pos].Count++
	}

	slices.SortStableFunc(counts, func(a, b ValueCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	return counts, nil
}

// Order returns the values of ValueCounts without their counts.
func (f *Frame) Order(col string) ([]string, error) {
	counts, err := f.ValueCounts(col)
	if err != nil {
		return nil, err
	}

	order := make([]string, len(counts))
	for i, c := range counts {
		order[i] = c.Value
	}

	return order, nil
}

// Categories returns the distinct non-null values of a column: ascending
// for numeric columns, first-appearance order otherwise.
func (f *Frame) Categories(col string) ([]string, error) {
	kind, err := f.Kind(col)
	if err != nil {
		return nil, err
	}

	values, na, _ := f.Records(col)
	seen := make(map[string]bool)

	var cats []string

	for i, v := range values {
		if na[i] || seen[v] {
			continue
		}

		seen[v] = true
		cats = append(cats, v)
	}

	if kind.Numeric() {
		sortLabels(cats, kind)
	}

	return cats, nil
}

// sortLabels orders labels numerically for numeric kinds, lexically otherwise.
func sortLabels(labels []string, kind Kind) {
	if !kind.Numeric() {
		slices.Sort(labels)

		return
	}

	slices.SortStableFunc(labels, func(a, b string) int {
		x, _ := strconv.ParseFloat(a, 64)
		y, _ := strconv.ParseFloat(b, 64)

		return cmp.Compare(x, y)
	})
}

// subset keeps the given row indices. An empty selection keeps the schema.
func (f *Frame) subset(rows []int) *Frame {
	if len(rows) == 0 {
		cols := make([]series.Series, 0, f.df.Ncol())
		for _, name := range f.df.Names() {
			cols = append(cols, series.New([]string{}, f.df.Col(name).Type(), name))
		}

		return &Frame{df: dataframe.New(cols...)}
	}

	return &Frame{df: f.df.Subset(rows)}
}

func (f *Frame) rowsWhere(col string, keep func(value string) bool) ([]int, error) {
	values, na, err := f.Records(col)
	if err != nil {
		return nil, err
	}

	var rows []int

	for i, v := range values {
		if !na[i] && keep(v) {
			rows = append(rows, i)
		}
	}

	return rows, nil
}

// Where keeps the rows whose column equals value.
func (f *Frame) Where(col, value string) (*Frame, error) {
	rows, err := f.rowsWhere(col, func(v string) bool { return v == value })
	if err != nil {
		return nil, err
	}

	return f.subset(rows), nil
}

// WhereIn keeps the rows whose column is one of values.
func (f *Frame) WhereIn(col string, values []string) (*Frame, error) {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}

	rows, err := f.rowsWhere(col, func(v string) bool { return set[v] })
	if err != nil {
		return nil, err
	}

	return f.subset(rows), nil
}

// WherePositive keeps the rows whose numeric column is greater than zero.
func (f *Frame) WherePositive(col string) (*Frame, error) {
	xs, err := f.Floats(col)
	if err != nil {
		return nil, err
	}

	var rows []int

	for i, x := range xs {
		if x > 0 {
			rows = append(rows, i)
		}
	}

	return f.subset(rows), nil
}

// Top keeps the rows whose column value is among the n most frequent values.
func (f *Frame) Top(col string, n int) (*Frame, error) {
	order, err := f.Order(col)
	if err != nil {
		return nil, err
	}

	if n < len(order) {
		order = order[:n]
	}

	return f.WhereIn(col, order)
}

// Drop removes a column.
func (f *Frame) Drop(col string) (*Frame, error) {
	err := f.Require(col)
	if err != nil {
		return nil, err
	}

	return FromDataFrame(f.df.Drop(col))
}

// Select keeps only the given columns, in the given order.
func (f *Frame) Select(cols ...string) (*Frame, error) {
	err := f.Require(cols...)
	if err != nil {
		return nil, err
	}

	return FromDataFrame(f.df.Select(cols))
}

// Crosstab is a frequency table of two categorical columns.
type Crosstab struct {
	RowLabels []string
	ColLabels []string
	// Values[i][j] counts rows with RowLabels[i] and ColLabels[j].
	Values [][]float64
}

// Crosstab counts co-occurrences of two columns. Rows with a null in either
// column are skipped; labels are sorted.
func (f *Frame) Crosstab(rowCol, colCol string) (*Crosstab, error) {
	rowVals, rowNA, err := f.Records(rowCol)
	if err != nil {
		return nil, err
	}

	colVals, colNA, err := f.Records(colCol)
	if err != nil {
		return nil, err
	}

	rowKind, _ := f.Kind(rowCol)
	colKind, _ := f.Kind(colCol)

	rowLabels := distinctWhere(rowVals, func(i int) bool { return !rowNA[i] && !colNA[i] })
	colLabels := distinctWhere(colVals, func(i int) bool { return !rowNA[i] && !colNA[i] })

	sortLabels(rowLabels, rowKind)
	sortLabels(colLabels, colKind)

	rowIdx := indexOf(rowLabels)
	colIdx := indexOf(colLabels)

	values := make([][]float64, len(rowLabels))
	for i := range values {
		values[i] = make([]float64, len(colLabels))
	}

	for i := range rowVals {
		if rowNA[i] || colNA[i] {
			continue
		}

		values[rowIdx[rowVals[i]]][colIdx[colVals[i]]]++
	}

	return &Crosstab{RowLabels: rowLabels, ColLabels: colLabels, Values: values}, nil
}

// Normalize returns a copy where each row sums to one.
func (c *Crosstab) Normalize() *Crosstab {
	values := make([][]float64, len(c.Values))

	for i, row := range c.Values {
		var total float64
		for _, v := range row {
			total += v
		}

		values[i] = make([]float64, len(row))

		for j, v := range row {
			if total == 0 {
				values[i][j] = math.NaN()

				continue
			}

			values[i][j] = v / total
		}
	}

	return &Crosstab{RowLabels: c.RowLabels, ColLabels: c.ColLabels, Values: values}
}

// Reorder returns a copy whose rows follow order. Rows absent from order
// are placed last in their current order.
func (c *Crosstab) Reorder(order []string) *Crosstab {
	rank := indexOf(order)
	idx := make([]int, len(c.RowLabels))

	for i := range idx {
		idx[i] = i
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		ra, okA := rank[c.RowLabels[a]]
		rb, okB := rank[c.RowLabels[b]]

		switch {
		case okA && okB:
			return cmp.Compare(ra, rb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})

	out := &Crosstab{ColLabels: c.ColLabels}
	for _, i := range idx {
		out.RowLabels = append(out.RowLabels, c.RowLabels[i])
		out.Values = append(out.Values, c.Values[i])
	}

	return out
}

// Column returns column j of the table.
func (c *Crosstab) Column(j int) []float64 {
	out := make([]float64, len(c.Values))
	for i, row := range c.Values {
		out[i] = row[j]
	}

	return out
}

// GroupStat summarizes one group of a numeric column.
type GroupStat struct {
	Key   string
	Mean  float64
	Sum   float64
	Count int
}

// GroupStats aggregates value by group, skipping nulls. Groups are ordered
// by key.
func (f *Frame) GroupStats(group, value string) ([]GroupStat, error) {
	keys, na, err := f.Records(group)
	if err != nil {
		return nil, err
	}

	xs, err := f.Floats(value)
	if err != nil {
		return nil, err
	}

	kind, _ := f.Kind(group)
	labels := distinctWhere(keys, func(i int) bool { return !na[i] })
	sortLabels(labels, kind)

	idx := indexOf(labels)
	stats := make([]GroupStat, len(labels))

	for i, label := range labels {
		stats[i].Key = label
	}

	for i, key := range keys {
		if na[i] || math.IsNaN(xs[i]) {
			continue
		}

		s := &stats[idx[key]]
		s.Sum += xs[i]
		s.Count++
	}

	for i := range stats {
		if stats[i].Count == 0 {
			stats[i].Mean = math.NaN()

			continue
		}

		stats[i].Mean = stats[i].Sum / float64(stats[i].Count)
	}

	return stats, nil
}

func distinctWhere(values []string, keep func(i int) bool) []string {
	seen := make(map[string]bool)

	var out []string

	for i, v := range values {
		if !keep(i) || seen[v] {
			continue
		}

		seen[v] = true
		out = append(out, v)
	}

	return out
}

func indexOf(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}

	return idx
}

// String implements fmt.Stringer for debugging.
func (c *Crosstab) String() string {
	return fmt.Sprintf("crosstab %dx%d", len(c.RowLabels), len(c.ColLabels))
}
