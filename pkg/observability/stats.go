package observability

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// StatRow is one collected data point.
type StatRow struct {
	Metric     string
	Attributes string
	Value      string
}

// CollectStats reads every recorded data point from reader, sorted by
// metric name then attributes.
func CollectStats(ctx context.Context, reader *sdkmetric.ManualReader) ([]StatRow, error) {
	var rm metricdata.ResourceMetrics

	err := reader.Collect(ctx, &rm)
	if err != nil {
		return nil, fmt.Errorf("collect metrics: %w", err)
	}

	var rows []StatRow

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					rows = append(rows, StatRow{Metric: m.Name, Attributes: formatSet(dp.Attributes), Value: fmt.Sprint(dp.Value)})
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					rows = append(rows, StatRow{
						Metric:     m.Name,
						Attributes: formatSet(dp.Attributes),
						Value:      fmt.Sprintf("count=%d sum=%.4f", dp.Count, dp.Sum),
					})
				}
			}
		}
	}

	slices.SortFunc(rows, func(a, b StatRow) int {
		if c := strings.Compare(a.Metric, b.Metric); c != 0 {
			return c
		}

		return strings.Compare(a.Attributes, b.Attributes)
	})

	return rows, nil
}

func formatSet(set attribute.Set) string {
	parts := make([]string, 0, set.Len())

	for _, kv := range set.ToSlice() {
		parts = append(parts, string(kv.Key)+"="+kv.Value.Emit())
	}

	return strings.Join(parts, ",")
}

// WriteStats prints the collected metrics as a table.
func WriteStats(ctx context.Context, w io.Writer, reader *sdkmetric.ManualReader) error {
	rows, err := CollectStats(ctx, reader)
	if err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Metric", "Attributes", "Value"})

	for _, r := range rows {
		tw.AppendRow(table.Row{r.Metric, r.Attributes, r.Value})
	}

	tw.Render()

	return nil
}
