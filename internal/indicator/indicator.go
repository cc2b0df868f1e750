// Package indicator implements the windowed time-series functions used as
// chart overlays and as callable functions inside formulas.
//
// Every function takes a series of length N and returns a new series of
// length N aligned index-for-index with its input. Positions before a
// function's lookback window has filled are NaN.
package indicator

import "math"

// DefaultMultiplier is the Bollinger band width used when none is given.
const DefaultMultiplier = 2.0

// maxPeriod caps coerced periods to keep window arithmetic within int range.
const maxPeriod = math.MaxInt32

// NormalizePeriod coerces a raw period to an integer >= 1 by truncating toward zero.
// NaN and negative values become 1.
func NormalizePeriod(v float64) int {
	if math.IsNaN(v) || v < 1 {
		return 1
	}

	if v >= maxPeriod {
		return maxPeriod
	}

	return int(v)
}

func clampPeriod(period int) int {
	if period < 1 {
		return 1
	}

	return period
}
