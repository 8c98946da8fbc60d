package calculator

import "math"

// Ichimoku holds the unshifted cloud lines.
type Ichimoku struct {
	Conversion []float64
	Base       []float64
	SpanA      []float64
	SpanB      []float64
}

// IchimokuSeries computes conversion (9), base (26) and leading spans A/B (52)
// without forward displacement, so the latest bar reads the current cloud.
func IchimokuSeries(highs, lows []float64) Ichimoku {
	n := len(highs)
	ich := Ichimoku{
		Conversion: midpoint(highs, lows, 9),
		Base:       midpoint(highs, lows, 26),
		SpanA:      nanSeries(n),
		SpanB:      midpoint(highs, lows, 52),
	}
	for i := 0; i < n; i++ {
		if !math.IsNaN(ich.Conversion[i]) && !math.IsNaN(ich.Base[i]) {
			ich.SpanA[i] = (ich.Conversion[i] + ich.Base[i]) / 2
		}
	}
	return ich
}

func midpoint(highs, lows []float64, period int) []float64 {
	hh := rollingMax(highs, period)
	ll := rollingMin(lows, period)
	out := nanSeries(len(highs))
	for i := range out {
		if !math.IsNaN(hh[i]) && !math.IsNaN(ll[i]) {
			out[i] = (hh[i] + ll[i]) / 2
		}
	}
	return out
}
