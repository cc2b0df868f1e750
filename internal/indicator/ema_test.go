package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-formula/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestEMAValues(t *testing.T) {
	res := EMA(types.Series{1, 2, 3, 4, 5}, 2)

	expected := []float64{1, 5.0 / 3, 23.0 / 9, 95.0 / 27, 365.0 / 81}
	assert.Len(t, res, len(expected))

	for i, v := range expected {
		assert.InDelta(t, v, res[i], 1e-12, "index %d", i)
	}
}

func TestEMASeed(t *testing.T) {
	series := types.Series{42, 1, 7, 3}

	for _, period := range []int{1, 2, 5, 100} {
		res := EMA(series, period)
		assert.Equal(t, series[0], res[0], "period %d", period)
	}
}

func TestEMANoWarmUp(t *testing.T) {
	res := EMA(types.Series{1, 2, 3, 4, 5, 6}, 10)

	for i := range res {
		assert.True(t, res.Defined(i), "index %d", i)
	}
}

func TestEMAPeriodOneTracksInput(t *testing.T) {
	series := types.Series{5, 3, 8, 1}
	assert.Equal(t, series, EMA(series, 1))
	assert.Equal(t, series, EMA(series, 0))
}

func TestEMAEmpty(t *testing.T) {
	assert.Empty(t, EMA(types.Series{}, 3))
}
