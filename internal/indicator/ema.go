package indicator

import (
	"github.com/rxtech-lab/argo-formula/internal/types"
)

// EMA computes the exponential moving average with smoothing factor 2/(period+1).
// The first output is seeded with series[0], so there is no warm-up gap.
func EMA(series types.Series, period int) types.Series {
	period = clampPeriod(period)
	res := make(types.Series, len(series))

	if len(series) == 0 {
		return res
	}

	k := 2 / float64(period+1)
	prev := series[0]
	res[0] = prev

	for i := 1; i < len(series); i++ {
		prev = series[i]*k + prev*(1-k)
		res[i] = prev
	}

	return res
}
