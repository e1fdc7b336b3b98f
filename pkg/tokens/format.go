package tokens

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kiliansala/kds-ai-tokens/pkg/variables"
)

// Format renders a raw literal for the $value field.
//
// Colors become uppercase hex (#RRGGBB, or #RRGGBBAA when alpha < 1). Floats
// are rounded to four decimals and get a "px" suffix when a dimension scope
// applies; otherwise they stay numbers. Everything else passes through.
// Format returns nil for null and alias values.
func Format(kind variables.Kind, scopes []variables.Scope, raw variables.Value) any {
	switch kind {
	case variables.KindColor:
		if c, ok := raw.Color(); ok {
			return HexColor(c)
		}
	case variables.KindFloat:
		if f, ok := raw.Float(); ok {
			r := RoundFloat(f)
			if IsDimension(scopes) {
				return FormatNumber(r) + "px"
			}
			return r
		}
	}
	return raw.Literal()
}

// HexColor converts a 0–1 float RGBA color to uppercase hex.
func HexColor(c variables.Color) string {
	hex := fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
	if c.A < 1 {
		hex += fmt.Sprintf("%02X", channel(c.A))
	}
	return hex
}

func channel(v float64) int {
	n := int(roundHalfUp(v * 255))
	return max(0, min(255, n))
}

// RoundFloat rounds v to four decimal places. Ties round toward positive
// infinity.
func RoundFloat(v float64) float64 {
	r := roundHalfUp(v*10000) / 10000
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// FormatNumber renders v in its shortest decimal form: 4 renders as "4",
// 4.125 as "4.125". Magnitudes of 1e21 and above switch to exponent form,
// so 1e21 renders as "1e+21". Rounded values never fall below 1e-4, so
// small magnitudes stay decimal.
func FormatNumber(v float64) string {
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
