// Package config provides configuration loading and validation for edaplot.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/edaplot/pkg/overview"
	"github.com/Sumatoshi-tech/edaplot/pkg/palette"
	"github.com/Sumatoshi-tech/edaplot/pkg/render/plotpage"
)

// Sentinel validation errors.
var (
	ErrInvalidSize      = errors.New("figure width and height must be positive")
	ErrInvalidDPI       = errors.New("figure dpi must be positive")
	ErrInvalidCols      = errors.New("plot cols must be positive")
	ErrInvalidTheme     = errors.New("invalid figure theme")
	ErrInvalidPalette   = errors.New("invalid plot palette")
	ErrInvalidSortKey   = errors.New("invalid overview sort key")
	ErrInvalidLogLevel  = errors.New("invalid logging level")
	ErrInvalidLogFormat = errors.New("invalid logging format")
)

// Config holds all configuration for edaplot.
type Config struct {
	Figure   FigureConfig   `mapstructure:"figure"`
	Plot     PlotConfig     `mapstructure:"plot"`
	Overview OverviewConfig `mapstructure:"overview"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// FigureConfig holds output figure settings.
type FigureConfig struct {
	Theme  string  `mapstructure:"theme"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	DPI    float64 `mapstructure:"dpi"`
}

// PlotConfig holds defaults shared by the plot helpers.
type PlotConfig struct {
	Palette string `mapstructure:"palette"`
	Cols    int    `mapstructure:"cols"`
}

// OverviewConfig holds the data overview settings.
type OverviewConfig struct {
	SortBy            string  `mapstructure:"sort_by"`
	ThreshPercentNull float64 `mapstructure:"thresh_percent_null"`
	ThreshCorrLabel   float64 `mapstructure:"thresh_corr_label"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file and environment variables.
// An empty path searches the working directory, ./config and
// $HOME/.config/edaplot for edaplot.yaml; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(ConfigName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}

	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("figure.width", DefaultFigureWidth)
	viperCfg.SetDefault("figure.height", DefaultFigureHeight)
	viperCfg.SetDefault("figure.dpi", DefaultFigureDPI)
	viperCfg.SetDefault("figure.theme", DefaultFigureTheme)

	viperCfg.SetDefault("plot.cols", DefaultPlotCols)
	viperCfg.SetDefault("plot.palette", DefaultPlotPalette)

	viperCfg.SetDefault("overview.sort_by", DefaultOverviewSortBy)
	viperCfg.SetDefault("overview.thresh_percent_null", DefaultThreshPercentNull)
	viperCfg.SetDefault("overview.thresh_corr_label", DefaultThreshCorrLabel)

	viperCfg.SetDefault("logging.level", DefaultLoggingLevel)
	viperCfg.SetDefault("logging.format", DefaultLoggingFormat)
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.Figure.Width <= 0 || config.Figure.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidSize, config.Figure.Width, config.Figure.Height)
	}

	if config.Figure.DPI <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidDPI, config.Figure.DPI)
	}

	_, err := plotpage.ParseTheme(config.Figure.Theme)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, config.Figure.Theme)
	}

	if config.Plot.Cols <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCols, config.Plot.Cols)
	}

	_, err = palette.Lookup(config.Plot.Palette)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPalette, config.Plot.Palette)
	}

	if !slices.Contains(overview.Columns(true), config.Overview.SortBy) {
		return fmt.Errorf("%w: %q", ErrInvalidSortKey, config.Overview.SortBy)
	}

	if !slices.Contains(logLevels, strings.ToLower(config.Logging.Level)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	if !slices.Contains(logFormats, strings.ToLower(config.Logging.Format)) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Logging.Format)
	}

	return nil
}
