// Package format builds the label strings drawn on charts.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Autopct returns a wedge label function for values. Each label shows the
// share with one decimal and the absolute count it stands for.
func Autopct(values []float64) func(pct float64) string {
	var total float64
	for _, v := range values {
		total += v
	}

	return func(pct float64) string {
		count := math.RoundToEven(pct * total / 100)

		return fmt.Sprintf("%.1f%%\n(%d)", pct, int64(count))
	}
}

// Fixed formats v with exactly decimals digits after the point.
func Fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', max(decimals, 0), 64)
}

// Share formats part/total as a percentage with one decimal, e.g. "12.5%".
func Share(part, total float64) string {
	if total == 0 {
		return "0.0%"
	}

	return Fixed(100*part/total, 1) + "%"
}

// Rounded formats v rounded to decimals digits in its shortest form,
// keeping at least one decimal: 3 becomes "3.0", 2.456 becomes "2.46".
func Rounded(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := Fixed(v, decimals)
	if !strings.Contains(s, ".") {
		return s + ".0"
	}

	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}

	return s
}

// FractionPercent formats a fraction in [0, 1] as a rounded percentage,
// e.g. 0.4 becomes "40.0%".
func FractionPercent(f float64) string {
	return Rounded(100*f, 1) + "%"
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Count formats an integer count with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Number formats a float with thousands separators and no trailing zeros.
func Number(v float64) string {
	return humanize.Commaf(v)
}
