package calculator

import "math"

// ADXResult holds the average directional index with its directional lines.
type ADXResult struct {
	ADX     []float64
	PlusDI  []float64
	MinusDI []float64
}

// ADXSeries computes Wilder's ADX, +DI and -DI. DI lines are defined from
// bar `period`, ADX from bar 2*period-1.
func ADXSeries(highs, lows, closes []float64, period int) ADXResult {
	n := len(closes)
	res := ADXResult{ADX: nanSeries(n), PlusDI: nanSeries(n), MinusDI: nanSeries(n)}
	if period <= 0 || n <= period {
		return res
	}

	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		tr[i] = math.Max(highs[i]-lows[i], math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	var sTR, sPlus, sMinus float64
	for i := 1; i <= period; i++ {
		sTR += tr[i]
		sPlus += plusDM[i]
		sMinus += minusDM[i]
	}

	p := float64(period)
	dx := nanSeries(n)
	for i := period; i < n; i++ {
		if i > period {
			sTR = sTR - sTR/p + tr[i]
			sPlus = sPlus - sPlus/p + plusDM[i]
			sMinus = sMinus - sMinus/p + minusDM[i]
		}
		plus, minus := 0.0, 0.0
		if sTR != 0 {
			plus = 100 * sPlus / sTR
			minus = 100 * sMinus / sTR
		}
		res.PlusDI[i] = plus
		res.MinusDI[i] = minus
		if sum := plus + minus; sum != 0 {
			dx[i] = 100 * math.Abs(plus-minus) / sum
		} else {
			dx[i] = 0
		}
	}

	first := 2*period - 1
	if n <= first {
		return res
	}
	adx := 0.0
	for i := period; i <= first; i++ {
		adx += dx[i]
	}
	adx /= p
	res.ADX[first] = adx
	for i := first + 1; i < n; i++ {
		adx = (adx*(p-1) + dx[i]) / p
		res.ADX[i] = adx
	}
	return res
}
