package plotpage

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrUnknownTheme is returned by ParseTheme for unsupported names.
var ErrUnknownTheme = errors.New("unknown theme")

// Theme represents a color theme for visualizations.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ParseTheme validates a theme name. The empty name selects ThemeLight.
func ParseTheme(name string) (Theme, error) {
	switch t := Theme(strings.ToLower(name)); t {
	case "":
		return ThemeLight, nil
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// ThemeConfig holds all theme-specific styling values.
type ThemeConfig struct {
	// Page colors.
	Background string
	Surface    string
	Border     string

	// Text colors.
	TextPrimary string
	TextMuted   string

	// Chart-specific.
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// ECharts theme name.
	EChartsTheme string
}

// GetThemeConfig returns the configuration for a given theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// CSSVariables returns the page color variables of the theme.
func (t ThemeConfig) CSSVariables() template.CSS {
	var b strings.Builder

	b.WriteString(":root {\n")

	for _, v := range [][2]string{
		{"--background", t.Background},
		{"--surface", t.Surface},
		{"--border", t.Border},
		{"--text", t.TextPrimary},
		{"--text-muted", t.TextMuted},
	} {
		fmt.Fprintf(&b, "  %s: %s;\n", v[0], v[1])
	}

	b.WriteString("}\n")

	return template.CSS(b.String())
}

var lightTheme = ThemeConfig{
	Background: "#fafaf9", // stone-50.
	Surface:    "#ffffff",
	Border:     "#e7e5e4", // stone-200.

	TextPrimary: "#1c1917", // stone-900.
	TextMuted:   "#696969", // dimgrey.

	ChartBackground: "#ffffff",
	ChartGrid:       "#eeeeee",
	ChartAxis:       "#cccccc",
	ChartText:       "#44403c", // stone-700.
	ChartTextMuted:  "#78716c", // stone-500.

	EChartsTheme: "",
}

var darkTheme = ThemeConfig{
	Background: "#0c0a09", // stone-950.
	Surface:    "#1c1917", // stone-900.
	Border:     "#44403c", // stone-700.

	TextPrimary: "#fafaf9", // stone-50.
	TextMuted:   "#a8a29e", // stone-400.

	ChartBackground: "transparent",
	ChartGrid:       "#44403c", // stone-700.
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1", // stone-300.
	ChartTextMuted:  "#a8a29e", // stone-400.

	EChartsTheme: "dark",
}
