package terminal_test

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/edaplot/pkg/terminal"
)

func TestDetectWidth(t *testing.T) {
	tests := []struct {
		env  string
		want int
	}{
		{"", terminal.DefaultWidth},
		{"100", 100},
		{"invalid", terminal.DefaultWidth},
		{"10", terminal.MinWidth},
		{"500", terminal.MaxWidth},
	}

	for _, tt := range tests {
		t.Setenv("COLUMNS", tt.env)
		assert.Equal(t, tt.want, terminal.DetectWidth(), tt.env)
	}
}

func TestNewConfig_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("COLUMNS", "90")

	cfg := terminal.NewConfig()
	assert.True(t, cfg.NoColor)
	assert.Equal(t, 90, cfg.Width)
}

func TestColorize(t *testing.T) {
	t.Parallel()

	plain := terminal.Config{NoColor: true}
	assert.Equal(t, "ok", plain.Colorize("ok", terminal.ColorGreen))

	colored := terminal.Config{}
	out := colored.Colorize("ok", terminal.ColorGreen)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "\x1b[32m")
	assert.Equal(t, "ok", colored.Colorize("ok", terminal.ColorNone))
}

func TestStatusLines(t *testing.T) {
	t.Parallel()

	cfg := terminal.Config{NoColor: true}

	var buf bytes.Buffer
	cfg.Success(&buf, "wrote %s", "a.png")
	cfg.Warn(&buf, "%d hidden", 2)
	cfg.Note(&buf, "done")

	assert.Equal(t, "wrote a.png\n2 hidden\ndone\n", buf.String())
}

func TestColorForShare(t *testing.T) {
	t.Parallel()

	assert.Equal(t, terminal.ColorGreen, terminal.ColorForShare(0))
	assert.Equal(t, terminal.ColorYellow, terminal.ColorForShare(0.1))
	assert.Equal(t, terminal.ColorRed, terminal.ColorForShare(0.75))
}

func TestDrawHeader(t *testing.T) {
	t.Parallel()

	header := terminal.DrawHeader("OVERVIEW", "5 columns", 40)
	lines := strings.Split(header, "\n")

	assert.Len(t, lines, 3)

	for _, l := range lines {
		assert.Equal(t, 40, utf8.RuneCountInString(l))
	}

	assert.Contains(t, lines[1], "OVERVIEW")
	assert.True(t, strings.HasSuffix(lines[1], "5 columns ┃"))

	narrow := terminal.DrawHeader("TITLE", "", 0)
	assert.Contains(t, narrow, "TITLE")
}

func TestDrawSeparator(t *testing.T) {
	t.Parallel()

	assert.Empty(t, terminal.DrawSeparator(0))
	assert.Equal(t, "───", terminal.DrawSeparator(3))
}
