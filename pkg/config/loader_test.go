package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/edaplot/pkg/config"
)

// Environment overrides mutate process state, so these tests are not parallel.

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("EDAPLOT_PLOT_COLS", "5")
	t.Setenv("EDAPLOT_FIGURE_THEME", "dark")

	path := writeConfig(t, "plot:\n  cols: 2\n")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Plot.Cols)
	assert.Equal(t, "dark", cfg.Figure.Theme)
}

func TestLoadConfig_EnvValidated(t *testing.T) {
	t.Setenv("EDAPLOT_FIGURE_DPI", "-3")

	_, err := config.LoadConfig(writeConfig(t, ""))
	require.ErrorIs(t, err, config.ErrInvalidDPI)
}

func TestLoadConfig_SearchPathWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPlotCols, cfg.Plot.Cols)
}
