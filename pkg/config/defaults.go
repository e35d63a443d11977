package config

// File lookup and environment settings.
const (
	ConfigName = "edaplot"
	EnvPrefix  = "EDAPLOT"
)

// Figure defaults.
const (
	DefaultFigureWidth  = 16.0
	DefaultFigureHeight = 12.0
	DefaultFigureDPI    = 96.0
	DefaultFigureTheme  = "light"
)

// Plot defaults.
const (
	DefaultPlotCols    = 3
	DefaultPlotPalette = "viridis"
)

// Overview defaults. Thresholds only apply when filtering is requested.
const (
	DefaultOverviewSortBy    = "qtd_null"
	DefaultThreshPercentNull = 0.0
	DefaultThreshCorrLabel   = 0.0
)

// Logging defaults.
const (
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)
