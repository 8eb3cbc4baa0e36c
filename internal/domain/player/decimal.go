package player

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimal converts the roster sheet's locale-formatted numerics
// ("1.234,5") into a float. Dots are thousands separators and are removed
// before the decimal comma becomes a point; a plain "1.5" therefore reads as
// 15, which matches how the sheet has always been parsed and must not be
// "fixed" without a breaking-change version. Empty, NaN and malformed values
// all default to zero rather than erroring.
func ParseDecimal(raw string) float64 {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "nan") {
		return 0
	}

	value = strings.ReplaceAll(value, ".", "")
	value = strings.ReplaceAll(value, ",", ".")

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0
	}
	return parsed
}

// ParseTier reads the optional Tier column. Anything that is not a positive
// integer counts as "no tier"; scoring maps that to the worst tier.
func ParseTier(raw string) int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		// Tiers occasionally arrive as "1,0" style decimals.
		f := ParseDecimal(value)
		if f <= 0 {
			return 0
		}
		return int(f)
	}
	if parsed < 0 {
		return 0
	}
	return parsed
}
