package observability_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/Sumatoshi-tech/edaplot/pkg/observability"
)

func setupTestMeter(t *testing.T) (*observability.RenderMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	rm, err := observability.NewRenderMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return rm, reader
}

func TestRenderMetrics_RecordRender(t *testing.T) {
	t.Parallel()

	rm, reader := setupTestMeter(t)
	ctx := context.Background()

	rm.RecordRender(ctx, "dist", "png", 1, 100*time.Millisecond)
	rm.RecordRender(ctx, "dist", "png", 2, 50*time.Millisecond)
	rm.RecordRender(ctx, "donut", "html", 0, 10*time.Millisecond)

	rows, err := observability.CollectStats(ctx, reader)
	require.NoError(t, err)

	values := make(map[string]string)
	for _, r := range rows {
		values[r.Metric+" "+r.Attributes] = r.Value
	}

	assert.Equal(t, "2", values["edaplot.figures.rendered format=png,kind=dist"])
	assert.Equal(t, "1", values["edaplot.figures.rendered format=html,kind=donut"])
	assert.Equal(t, "3", values["edaplot.cells.hidden kind=dist"])
	assert.Contains(t, values["edaplot.render.duration.seconds format=png,kind=dist"], "count=2")
}

func TestRenderMetrics_NilReceiver(t *testing.T) {
	t.Parallel()

	var rm *observability.RenderMetrics

	assert.NotPanics(t, func() {
		rm.RecordRender(context.Background(), "dist", "png", 0, time.Second)
	})
}

func TestWriteStats(t *testing.T) {
	t.Parallel()

	rm, reader := setupTestMeter(t)
	rm.RecordRender(context.Background(), "corr", "svg", 0, time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, observability.WriteStats(context.Background(), &buf, reader))

	out := buf.String()
	assert.Contains(t, out, "edaplot.figures.rendered")
	assert.Contains(t, out, "format=svg,kind=corr")
}
