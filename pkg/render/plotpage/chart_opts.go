package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Label font sizes in pixels.
const (
	titleFontSize = 14
	labelFontSize = 10
)

// ChartOpts provides themed chart options based on the current theme.
// Pages are static: no tooltip, zoom or toolbox options are produced.
type ChartOpts struct {
	theme ThemeConfig
	style Style
}

// NewChartOpts creates a new ChartOpts with the given theme and style.
func NewChartOpts(theme Theme, style Style) *ChartOpts {
	return &ChartOpts{theme: GetThemeConfig(theme), style: style}
}

// DefaultChartOpts returns chart options for the light theme and default style.
func DefaultChartOpts() *ChartOpts {
	return NewChartOpts(ThemeLight, DefaultStyle())
}

// Init returns initialization options with themed background.
func (c *ChartOpts) Init() opts.Initialization {
	return opts.Initialization{
		Width:           c.style.Width,
		Height:          c.style.Height,
		BackgroundColor: c.theme.ChartBackground,
		Theme:           c.theme.EChartsTheme,
	}
}

// Title returns title options; an empty color uses the themed text color.
func (c *ChartOpts) Title(title, color string) opts.Title {
	if color == "" {
		color = c.theme.ChartText
	}

	return opts.Title{
		Title:      title,
		Left:       "center",
		TitleStyle: &opts.TextStyle{Color: color, FontSize: titleFontSize},
	}
}

// Legend returns legend options with themed text color.
func (c *ChartOpts) Legend(show bool) opts.Legend {
	return opts.Legend{
		Show:      opts.Bool(show),
		Type:      "scroll",
		Bottom:    "0",
		Left:      "center",
		TextStyle: &opts.TextStyle{Color: c.theme.ChartTextMuted, FontSize: labelFontSize},
	}
}

// XAxis returns x-axis options with themed colors.
func (c *ChartOpts) XAxis(name, kind string, showLabels bool) opts.XAxis {
	return opts.XAxis{
		Name:      name,
		Type:      kind,
		AxisLabel: &opts.AxisLabel{Show: opts.Bool(showLabels), Color: c.theme.ChartTextMuted, FontSize: labelFontSize},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
	}
}

// YAxis returns y-axis options with themed colors.
func (c *ChartOpts) YAxis(name, kind string, showLabels bool) opts.YAxis {
	return opts.YAxis{
		Name:      name,
		Type:      kind,
		AxisLabel: &opts.AxisLabel{Show: opts.Bool(showLabels), Color: c.theme.ChartTextMuted, FontSize: labelFontSize},
		AxisLine:  &opts.AxisLine{LineStyle: &opts.LineStyle{Color: c.theme.ChartAxis}},
		SplitLine: &opts.SplitLine{
			Show:      opts.Bool(true),
			LineStyle: &opts.LineStyle{Color: c.theme.ChartGrid},
		},
	}
}

// Grid returns grid options with standard margins.
func (c *ChartOpts) Grid() opts.Grid {
	return opts.Grid{
		Top:          c.style.GridTop,
		Bottom:       c.style.GridBottom,
		Left:         c.style.GridLeft,
		Right:        c.style.GridRight,
		ContainLabel: opts.Bool(true),
	}
}

// TextColor returns the primary chart text color.
func (c *ChartOpts) TextColor() string {
	return c.theme.ChartText
}
