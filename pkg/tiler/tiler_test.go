package tiler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/edaplot/pkg/figure"
	"github.com/Sumatoshi-tech/edaplot/pkg/tiler"
)

func titleRender(ax *figure.Axes, feature string) error {
	ax.SetTitle(feature, "", figure.DefaultTitleSize)

	return nil
}

func features(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("f%d", i)
	}

	return out
}

func TestTile_FiveFeaturesThreeCols(t *testing.T) {
	t.Parallel()

	fig := figure.New(8, 6)

	layout, err := tiler.Tile(fig, []string{"a", "b", "c", "d", "e"}, 3, titleRender)
	require.NoError(t, err)

	assert.Equal(t, 2, layout.Rows)
	assert.Equal(t, 3, layout.Cols)
	assert.Equal(t, []tiler.Placement{
		{Row: 0, Col: 0, Feature: "a"},
		{Row: 0, Col: 1, Feature: "b"},
		{Row: 0, Col: 2, Feature: "c"},
		{Row: 1, Col: 0, Feature: "d"},
		{Row: 1, Col: 1, Feature: "e"},
	}, layout.Placements)
	assert.Equal(t, []int{5}, layout.Hidden)

	grid := fig.Grid()
	assert.True(t, grid.At(1, 2).Hidden())
	assert.Equal(t, "e", grid.At(1, 1).Title.Text)
	assert.Equal(t, 1, grid.HiddenCount())
}

func TestTile_ExactFitHidesNothing(t *testing.T) {
	t.Parallel()

	fig := figure.New(8, 6)

	layout, err := tiler.Tile(fig, []string{"x", "y"}, 2, titleRender)
	require.NoError(t, err)

	assert.Equal(t, 1, layout.Rows)
	assert.Empty(t, layout.Hidden)
	assert.Equal(t, "x", fig.Grid().At(0, 0).Title.Text)
	assert.Equal(t, "y", fig.Grid().At(0, 1).Title.Text)
}

func TestTile_SingleFeature(t *testing.T) {
	t.Parallel()

	fig := figure.New(8, 6)

	layout, err := tiler.Tile(fig, []string{"only"}, 1, titleRender)
	require.NoError(t, err)

	assert.Equal(t, 1, layout.Rows)
	assert.Equal(t, 1, fig.Grid().Len())
	assert.Empty(t, layout.Hidden)
}

func TestTile_HiddenCellsAreTrailingSurplus(t *testing.T) {
	t.Parallel()

	for n := 1; n <= 12; n++ {
		for c := 1; c <= 5; c++ {
			fig := figure.New(8, 6)

			layout, err := tiler.Tile(fig, features(n), c, titleRender)
			require.NoError(t, err)

			rows := (n + c - 1) / c
			surplus := rows*c - n

			assert.Equal(t, rows, layout.Rows, "n=%d c=%d", n, c)
			assert.Len(t, layout.Hidden, surplus, "n=%d c=%d", n, c)

			for i, ax := range fig.Grid().All() {
				assert.Equal(t, i >= n, ax.Hidden(), "n=%d c=%d cell=%d", n, c, i)
			}
		}
	}
}

func TestTile_Idempotent(t *testing.T) {
	t.Parallel()

	first, err := tiler.Tile(figure.New(8, 6), features(7), 3, titleRender)
	require.NoError(t, err)

	second, err := tiler.Tile(figure.New(8, 6), features(7), 3, titleRender)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTile_InvalidConfigurationBeforeAllocation(t *testing.T) {
	t.Parallel()

	calls := 0
	render := func(*figure.Axes, string) error {
		calls++

		return nil
	}

	fig := figure.New(8, 6)

	_, err := tiler.Tile(fig, []string{"a"}, 0, render)
	require.ErrorIs(t, err, figure.ErrInvalidConfiguration)

	_, err = tiler.Tile(fig, nil, 3, render)
	require.ErrorIs(t, err, figure.ErrInvalidConfiguration)

	assert.Nil(t, fig.Grid())
	assert.Zero(t, calls)
}

func TestTile_RenderErrorAborts(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	render := func(_ *figure.Axes, feature string) error {
		if feature == "f1" {
			return errBoom
		}

		return nil
	}

	_, err := tiler.Tile(figure.New(8, 6), features(3), 2, render)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), `"f1"`)
}

func TestGeometry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, cols, rows int
	}{
		{1, 1, 1},
		{5, 3, 2},
		{6, 3, 2},
		{7, 3, 3},
		{2, 5, 1},
	}

	for _, tt := range tests {
		rows, err := tiler.Geometry(tt.n, tt.cols)
		require.NoError(t, err)
		assert.Equal(t, tt.rows, rows, "n=%d cols=%d", tt.n, tt.cols)
	}

	_, err := tiler.Geometry(3, -1)
	require.ErrorIs(t, err, figure.ErrInvalidConfiguration)
}
