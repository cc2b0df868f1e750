package indicator

import (
	"github.com/rxtech-lab/argo-formula/internal/types"
)

// SMA computes the simple moving average over a trailing window of period samples.
// Output is defined for i >= period-1. Runs in O(N) using a running sum.
func SMA(series types.Series, period int) types.Series {
	period = clampPeriod(period)
	res := types.NaNSeries(len(series))

	var sum float64

	for i := range series {
		sum += series[i]
		if i >= period {
			sum -= series[i-period]
		}

		if i >= period-1 {
			res[i] = sum / float64(period)
		}
	}

	return res
}
