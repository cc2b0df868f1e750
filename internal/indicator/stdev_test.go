package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestStdevValues(t *testing.T) {
	res := Stdev(types.Series{1, 2, 3, 4, 5}, 3)

	assert.True(t, math.IsNaN(res[0]))
	assert.True(t, math.IsNaN(res[1]))

	for i := 2; i < 5; i++ {
		assert.InDelta(t, math.Sqrt(2.0/3.0), res[i], 1e-12, "index %d", i)
	}
}

func TestStdevConstantSeriesIsZero(t *testing.T) {
	res := Stdev(types.NewSeries(20, 0.1), 5)

	for i := 4; i < len(res); i++ {
		assert.InDelta(t, 0.0, res[i], 1e-9)
	}
}

func TestStdevNonNegative(t *testing.T) {
	// large magnitudes with tiny variation stress the E[x²]-E[x]² cancellation
	series := make(types.Series, 200)
	for i := range series {
		series[i] = 1e8 + float64(i%3)*1e-3
	}

	for _, period := range []int{1, 2, 7, 50} {
		res := Stdev(series, period)
		for i := period - 1; i < len(res); i++ {
			assert.GreaterOrEqual(t, res[i], 0.0, "period %d index %d", period, i)
		}
	}
}

func TestStdevWarmUpMatchesSMA(t *testing.T) {
	series := types.Series{4, 8, 15, 16, 23, 42}
	sd := Stdev(series, 4)
	ma := SMA(series, 4)

	for i := range series {
		assert.Equal(t, math.IsNaN(ma[i]), math.IsNaN(sd[i]), "index %d", i)
	}
}
