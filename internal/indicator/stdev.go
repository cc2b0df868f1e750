package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-formula/internal/types"
)

// Stdev computes the rolling population standard deviation over a trailing window.
// Output is defined for i >= period-1, exactly like SMA.
func Stdev(series types.Series, period int) types.Series {
	period = clampPeriod(period)
	res := types.NaNSeries(len(series))

	var sum, sumSq float64

	for i, x := range series {
		sum += x
		sumSq += x * x

		if i >= period {
			y := series[i-period]
			sum -= y
			sumSq -= y * y
		}

		if i >= period-1 {
			mean := sum / float64(period)
			// cancellation can push the variance slightly below zero
			variance := math.Max(sumSq/float64(period)-mean*mean, 0)
			res[i] = math.Sqrt(variance)
		}
	}

	return res
}
