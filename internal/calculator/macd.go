package calculator

import "math"

// MACDSeries computes the MACD line, signal line and histogram using the
// fast/slow/signal EMA scheme.
func MACDSeries(closes []float64, fast, slow, signal int) (line, sig, hist []float64) {
	n := len(closes)
	emaFast := EMASeries(closes, fast)
	emaSlow := EMASeries(closes, slow)

	line = nanSeries(n)
	for i := range closes {
		if !math.IsNaN(emaFast[i]) && !math.IsNaN(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}

	sig = EMASeries(line, signal)
	hist = nanSeries(n)
	for i := range closes {
		if !math.IsNaN(line[i]) && !math.IsNaN(sig[i]) {
			hist[i] = line[i] - sig[i]
		}
	}
	return line, sig, hist
}
