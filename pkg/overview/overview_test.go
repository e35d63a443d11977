package overview_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/edaplot/pkg/frame"
	"github.com/Sumatoshi-tech/edaplot/pkg/overview"
)

const surveyCSV = `a,b,c,y
1,1.5,x,1
2,NA,y,2
3,2.5,NA,3
4,NA,x,4
5,3.5,y,5
6,NA,z,6
7,4.5,NA,7
8,NA,x,8
9,5.5,y,9
10,NA,x,10
`

func survey(t *testing.T) *frame.Frame {
	t.Helper()

	df, err := frame.ReadCSV(strings.NewReader(surveyCSV))
	require.NoError(t, err)

	return df
}

func features(tbl *overview.Table) []string {
	out := make([]string, len(tbl.Rows))
	for i, r := range tbl.Rows {
		out[i] = r.Feature
	}

	return out
}

func TestBuild_SortsByNullCount(t *testing.T) {
	t.Parallel()

	tbl, err := overview.Build(survey(t), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "c", "a", "y"}, features(tbl))
	assert.False(t, tbl.HasCorr)

	b, c, a := tbl.Rows[0], tbl.Rows[1], tbl.Rows[2]
	assert.Equal(t, 5, b.QtdNull)
	assert.InDelta(t, 0.5, b.PercentNull, 1e-12)
	assert.Equal(t, "float64", b.Dtype)
	assert.Equal(t, 0, b.QtdCat)

	assert.Equal(t, 2, c.QtdNull)
	assert.InDelta(t, 0.2, c.PercentNull, 1e-12)
	assert.Equal(t, "object", c.Dtype)
	assert.Equal(t, 3, c.QtdCat)

	assert.Equal(t, "int64", a.Dtype)
	assert.InDelta(t, 0.0, a.PercentNull, 1e-12)
	assert.True(t, math.IsNaN(a.TargetCorr))
}

func TestBuild_TargetCorrelation(t *testing.T) {
	t.Parallel()

	tbl, err := overview.Build(survey(t), &overview.Options{Corr: true, Label: "y", SortBy: overview.ColTargetCorr})
	require.NoError(t, err)
	require.True(t, tbl.HasCorr)

	byName := map[string]overview.Row{}
	for _, r := range tbl.Rows {
		byName[r.Feature] = r
	}

	assert.InDelta(t, 1.0, byName["a"].TargetCorr, 1e-9)
	assert.InDelta(t, 1.0, byName["b"].TargetCorr, 1e-9)
	assert.True(t, math.IsNaN(byName["c"].TargetCorr))
	assert.Equal(t, "c", tbl.Rows[len(tbl.Rows)-1].Feature)
}

func TestBuild_ThresholdsNotApplied(t *testing.T) {
	t.Parallel()

	opts := &overview.Options{Corr: true, Label: "y", ThreshPercentNull: 0.1, ThreshCorrLabel: 0.5}

	tbl, err := overview.Build(survey(t), opts)
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 4)
	assert.Equal(t, []string{"b"}, features(tbl.FilterConfigured()))

	plain, err := overview.Build(survey(t), &overview.Options{ThreshPercentNull: 0.1})
	require.NoError(t, err)
	assert.Len(t, plain.Rows, 4)
	assert.Equal(t, []string{"b", "c"}, features(plain.FilterConfigured()))
}

func TestBuild_NullRates(t *testing.T) {
	t.Parallel()

	df, err := frame.ReadCSV(strings.NewReader("p,q,r\n1,NA,x\n2,NA,NA\n3,NA,y\n4,NA,x\n5,NA,y\n" +
		"6,1,x\n7,2,y\n8,3,x\n9,4,y\n10,5,x\n"))
	require.NoError(t, err)

	tbl, err := overview.Build(df, &overview.Options{SortBy: overview.ColPercentNull})
	require.NoError(t, err)

	assert.Equal(t, []string{"q", "r", "p"}, features(tbl))
	assert.InDelta(t, 0.5, tbl.Rows[0].PercentNull, 1e-12)
	assert.InDelta(t, 0.1, tbl.Rows[1].PercentNull, 1e-12)
	assert.InDelta(t, 0.0, tbl.Rows[2].PercentNull, 1e-12)
	assert.Equal(t, "float64", tbl.Rows[0].Dtype)
	assert.Equal(t, 2, tbl.Rows[1].QtdCat)
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	_, err := overview.Build(survey(t), &overview.Options{SortBy: "rank"})
	require.ErrorIs(t, err, overview.ErrUnknownSortKey)

	_, err = overview.Build(survey(t), &overview.Options{SortBy: overview.ColTargetCorr})
	require.ErrorIs(t, err, overview.ErrUnknownSortKey)

	_, err = overview.Build(survey(t), &overview.Options{Corr: true, Label: "ghost"})
	require.ErrorIs(t, err, frame.ErrMissingColumn)

	_, err = overview.Build(survey(t), &overview.Options{Corr: true, Label: "c"})
	require.ErrorIs(t, err, frame.ErrNotNumeric)
}

func TestWrite_TextStyles(t *testing.T) {
	t.Parallel()

	tbl, err := overview.Build(survey(t), &overview.Options{Corr: true, Label: "y"})
	require.NoError(t, err)

	tests := []struct {
		style overview.Style
		want  string
	}{
		{overview.StyleTable, "0.5000"},
		{overview.StyleMarkdown, "| b "},
		{overview.StyleCSV, "b,5,0.5000,float64,0"},
		{overview.StyleHTML, "<table"},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, tbl.Write(&buf, tt.style))
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "1.0000")
		})
	}

	var buf bytes.Buffer
	require.ErrorIs(t, tbl.Write(&buf, "latex"), overview.ErrUnknownStyle)
}

func TestWrite_TableKeepsColumnNames(t *testing.T) {
	t.Parallel()

	tbl, err := overview.Build(survey(t), &overview.Options{Corr: true, Label: "y"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.Write(&buf, overview.StyleTable))

	for _, col := range overview.Columns(true) {
		assert.Contains(t, buf.String(), col)
	}

	assert.NotContains(t, buf.String(), strings.ToUpper(overview.ColQtdNull))
}

func TestWriteJSON_NaNBecomesNull(t *testing.T) {
	t.Parallel()

	tbl, err := overview.Build(survey(t), &overview.Options{Corr: true, Label: "y"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteJSON(&buf))

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 4)

	assert.Equal(t, "b", rows[0]["feature"])
	assert.InDelta(t, 0.5, rows[0]["percent_null"], 1e-12)
	assert.Equal(t, "c", rows[1]["feature"])
	assert.Contains(t, rows[1], "target_pearson_corr")
	assert.Nil(t, rows[1]["target_pearson_corr"])
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	tbl, err := overview.Build(survey(t), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteYAML(&buf))

	var rows []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 4)

	assert.Equal(t, "b", rows[0]["feature"])
	assert.Equal(t, 5, rows[0]["qtd_null"])
	assert.NotContains(t, rows[0], "target_pearson_corr")
}
