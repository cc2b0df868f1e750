package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePeriod(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int
	}{
		{name: "integer", input: 20, expected: 20},
		{name: "truncates", input: 3.9, expected: 3},
		{name: "below one", input: 0.5, expected: 1},
		{name: "zero", input: 0, expected: 1},
		{name: "negative", input: -7, expected: 1},
		{name: "NaN", input: math.NaN(), expected: 1},
		{name: "negative infinity", input: math.Inf(-1), expected: 1},
		{name: "positive infinity", input: math.Inf(1), expected: maxPeriod},
		{name: "huge", input: 1e300, expected: maxPeriod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePeriod(tt.input))
		})
	}
}
