package console

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		// drop the sign of -0
		return 0
	}
	return r
}

// FormatScore renders v with at most two decimals and no trailing zeros,
// always keeping the integer digit: 0.4142 -> "0.41", 6.0 -> "6", 0.5 -> "0.5".
func FormatScore(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		if v > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	return humanize.Ftoa(round2(v))
}

// FormatOptionalInteger is FormatScore without a leading zero:
// 0.68 -> ".68", 1.5 -> "1.5", 0 -> "".
func FormatOptionalInteger(v float64) string {
	s := FormatScore(v)
	switch {
	case s == "0":
		return ""
	case strings.HasPrefix(s, "0."):
		return s[1:]
	case strings.HasPrefix(s, "-0."):
		return "-" + s[2:]
	}
	return s
}
