// Package strategy turns pairs of evaluated series into discrete buy/sell signals.
package strategy

import (
	"math"

	"github.com/rxtech-lab/argo-formula/internal/types"
)

// Direction selects which way a crossing is detected.
type Direction int

const (
	// Above fires when a moves from at-or-below b to strictly above it.
	Above Direction = 1
	// Below fires when a moves from at-or-above b to strictly below it.
	Below Direction = -1
)

// Crosses reports whether a crosses b in the given direction at index i.
// A tie on the previous sample counts as not yet crossed, so a crossing fires
// exactly once on the sample where the inequality strictly flips.
func Crosses(dir Direction, a, b types.Series, i int) bool {
	if i <= 0 || i >= len(a) || i >= len(b) {
		return false
	}

	prevA, prevB := a[i-1], b[i-1]
	curA, curB := a[i], b[i]

	if math.IsNaN(prevA) || math.IsNaN(prevB) || math.IsNaN(curA) || math.IsNaN(curB) {
		return false
	}

	if dir == Above {
		return prevA <= prevB && curA > curB
	}

	return prevA >= prevB && curA < curB
}

// Compare evaluates a scalar comparison. Crossing and unknown operators yield false.
func Compare(op types.Operator, x, y float64) bool {
	switch op {
	case types.OperatorGreater:
		return x > y
	case types.OperatorGreaterOrEqual:
		return x >= y
	case types.OperatorLess:
		return x < y
	case types.OperatorLessOrEqual:
		return x <= y
	case types.OperatorEqual:
		return x == y
	default:
		return false
	}
}

// Scan walks indices 1..N-1 and returns a signal for every index where op fires.
// crosses_above emits buy, crosses_below emits sell, and comparison operators only
// ever emit buy, and only where both sides are finite. Index 0 is never reported.
func Scan(op types.Operator, left, right types.Series) []types.Signal {
	n := min(len(left), len(right))
	signals := []types.Signal{}

	for i := 1; i < n; i++ {
		switch op {
		case types.OperatorCrossesAbove:
			if Crosses(Above, left, right, i) {
				signals = append(signals, types.Signal{Index: i, Kind: types.SignalKindBuy})
			}
		case types.OperatorCrossesBelow:
			if Crosses(Below, left, right, i) {
				signals = append(signals, types.Signal{Index: i, Kind: types.SignalKindSell})
			}
		default:
			if left.Defined(i) && right.Defined(i) && Compare(op, left[i], right[i]) {
				signals = append(signals, types.Signal{Index: i, Kind: types.SignalKindBuy})
			}
		}
	}

	return signals
}
