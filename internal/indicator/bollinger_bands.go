package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-formula/internal/types"
)

// BollingerResult holds the three bands derived from one source series.
type BollingerResult struct {
	Upper types.Series
	Mid   types.Series
	Lower types.Series
}

// Boll computes Bollinger bands: mid = SMA, upper/lower = mid ± mult·stdev.
// All three bands are NaN wherever either the mean or the deviation is undefined.
func Boll(series types.Series, period int, mult float64) BollingerResult {
	mid := SMA(series, period)
	sd := Stdev(series, period)

	upper := types.NaNSeries(len(series))
	lower := types.NaNSeries(len(series))

	for i := range series {
		if math.IsNaN(mid[i]) || math.IsNaN(sd[i]) {
			mid[i] = math.NaN()
			continue
		}

		upper[i] = mid[i] + mult*sd[i]
		lower[i] = mid[i] - mult*sd[i]
	}

	return BollingerResult{
		Upper: upper,
		Mid:   mid,
		Lower: lower,
	}
}
