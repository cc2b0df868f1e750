package workspace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Palette is the cycle of colors assigned to indicators and strategies.
var Palette = []string{
	"#1976d2",
	"#ff9800",
	"#9c27b0",
	"#43a047",
	"#e91e63",
	"#009688",
	"#5d4037",
	"#607d8b",
}

// ColorFor returns the palette color for the idx-th definition.
func ColorFor(idx int) string {
	if idx < 0 {
		idx = -idx
	}

	return Palette[idx%len(Palette)]
}

// Shade moves a "#rrggbb" color pct percent toward white (pct > 0) or black (pct < 0).
// Colors that do not parse are returned unchanged.
func Shade(hex string, pct float64) string {
	raw := strings.TrimPrefix(hex, "#")
	if len(raw) != 6 {
		return hex
	}

	c, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return hex
	}

	target := 255.0
	if pct < 0 {
		target = 0
	}

	p := math.Min(math.Abs(pct), 100) / 100
	channel := func(v uint64) uint64 {
		f := float64(v)
		// round half up, as browsers do
		return uint64(math.Floor((target-f)*p+0.5) + f)
	}

	r := channel((c >> 16) & 0xff)
	g := channel((c >> 8) & 0xff)
	b := channel(c & 0xff)

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
