package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/edaplot/pkg/format"
)

func TestAutopct(t *testing.T) {
	t.Parallel()

	pct := format.Autopct([]float64{30, 70})

	assert.Equal(t, "30.0%\n(30)", pct(30))
	assert.Equal(t, "70.0%\n(70)", pct(70))

	// Half counts round to even.
	half := format.Autopct([]float64{1, 4})
	assert.Equal(t, "50.0%\n(2)", half(50))
	assert.Equal(t, "30.0%\n(2)", half(30))
}

func TestFixedAndShare(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3", format.Fixed(3.4, 0))
	assert.Equal(t, "3.40", format.Fixed(3.4, 2))
	assert.Equal(t, "33.3%", format.Share(1, 3))
	assert.Equal(t, "0.0%", format.Share(1, 0))
}

func TestRounded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		dec  int
		want string
	}{
		{3, 2, "3.0"},
		{2.456, 2, "2.46"},
		{2.5, 2, "2.5"},
		{-1.25, 1, "-1.2"},
		{40, 1, "40.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, format.Rounded(tt.in, tt.dec), "in=%v", tt.in)
	}

	assert.Equal(t, "40.0%", format.FractionPercent(0.4))
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Customer_state", format.Capitalize("customer_STATE"))
	assert.Equal(t, "", format.Capitalize(""))
	assert.Equal(t, "Éclair", format.Capitalize("éCLAIR"))
}

func TestCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1,234,567", format.Count(1234567))
	assert.Equal(t, "1,234.5", format.Number(1234.5))
}
