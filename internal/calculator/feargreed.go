package calculator

import "math"

// fearGreedMinBars is the history needed before the index leaves its neutral default.
const fearGreedMinBars = 20

// FearGreedSeries blends RSI, band position, volume surge and the MA20/MA50
// spread into a 0-100 sentiment index. Components that are still undefined
// read as neutral 50.
func FearGreedSeries(rsi, bbPosition, volumes, sma20, sma50 []float64) []float64 {
	n := len(volumes)
	out := make([]float64, n)
	volMean := rollingMean(volumes, fearGreedMinBars)
	for i := 0; i < n; i++ {
		if i+1 < fearGreedMinBars {
			out[i] = 50
			continue
		}

		rsiPart := orNeutral(rsi[i])
		bbPart := orNeutral(bbPosition[i])

		volPart := 50.0
		if !math.IsNaN(volMean[i]) && volMean[i] > 0 {
			volPart = Clamp(volumes[i]/volMean[i]*50, 0, 100)
		}

		maPart := 50.0
		if !math.IsNaN(sma20[i]) && !math.IsNaN(sma50[i]) && sma50[i] != 0 {
			maPart = Clamp((sma20[i]-sma50[i])/sma50[i]*500+50, 0, 100)
		}

		out[i] = rsiPart*0.3 + bbPart*0.3 + volPart*0.2 + maPart*0.2
	}
	return out
}

func orNeutral(v float64) float64 {
	if math.IsNaN(v) {
		return 50
	}
	return v
}
