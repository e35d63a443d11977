package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricFiguresRendered = "edaplot.figures.rendered"
	metricCellsHidden     = "edaplot.cells.hidden"
	metricRenderDuration  = "edaplot.render.duration.seconds"

	attrKind   = "kind"
	attrFormat = "format"
)

// durationBucketBoundaries covers 1ms to 60s, from small bar charts to
// large correlation heatmaps rendered as PDF.
var durationBucketBoundaries = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}

// RenderMetrics holds the OTel instruments for figure rendering.
type RenderMetrics struct {
	figuresRendered metric.Int64Counter
	cellsHidden     metric.Int64Counter
	renderDuration  metric.Float64Histogram
}

// NewRenderMetrics creates render metric instruments from the given meter.
func NewRenderMetrics(mt metric.Meter) (*RenderMetrics, error) {
	figures, err := mt.Int64Counter(metricFiguresRendered,
		metric.WithDescription("Total number of rendered figures"),
		metric.WithUnit("{figure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFiguresRendered, err)
	}

	hidden, err := mt.Int64Counter(metricCellsHidden,
		metric.WithDescription("Total number of hidden grid cells"),
		metric.WithUnit("{cell}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCellsHidden, err)
	}

	duration, err := mt.Float64Histogram(metricRenderDuration,
		metric.WithDescription("Figure build and encode duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRenderDuration, err)
	}

	return &RenderMetrics{
		figuresRendered: figures,
		cellsHidden:     hidden,
		renderDuration:  duration,
	}, nil
}

// RecordRender records one rendered figure of the given plot kind and output format.
// Safe to call on a nil receiver (no-op).
func (rm *RenderMetrics) RecordRender(ctx context.Context, kind, format string, hiddenCells int, duration time.Duration) {
	if rm == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String(attrKind, kind),
		attribute.String(attrFormat, format),
	)

	rm.figuresRendered.Add(ctx, 1, attrs)
	rm.cellsHidden.Add(ctx, int64(hiddenCells), metric.WithAttributes(attribute.String(attrKind, kind)))
	rm.renderDuration.Record(ctx, duration.Seconds(), attrs)
}
