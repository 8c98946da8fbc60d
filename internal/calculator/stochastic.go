package calculator

import "math"

// StochasticSeries computes %K over kPeriod bars and %D as the dPeriod SMA
// of %K. A flat high/low range reads 50.
func StochasticSeries(highs, lows, closes []float64, kPeriod, dPeriod int) (k, d []float64) {
	n := len(closes)
	k = nanSeries(n)
	hh := rollingMax(highs, kPeriod)
	ll := rollingMin(lows, kPeriod)
	for i := range closes {
		if math.IsNaN(hh[i]) || math.IsNaN(ll[i]) {
			continue
		}
		if hh[i]-ll[i] == 0 {
			k[i] = 50
			continue
		}
		k[i] = (closes[i] - ll[i]) / (hh[i] - ll[i]) * 100
	}
	d = rollingMean(k, dPeriod)
	return k, d
}
