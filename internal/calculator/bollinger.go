package calculator

import "math"

// BollingerBands holds the band series and the derived width/position.
type BollingerBands struct {
	Upper    []float64
	Middle   []float64
	Lower    []float64
	Width    []float64 // (upper-lower)/middle
	Position []float64 // 0 = lower band, 100 = upper band
}

// BollingerSeries computes bands of `k` population standard deviations
// around the `period` SMA.
func BollingerSeries(closes []float64, period int, k float64) BollingerBands {
	n := len(closes)
	bb := BollingerBands{
		Middle:   SMASeries(closes, period),
		Upper:    nanSeries(n),
		Lower:    nanSeries(n),
		Width:    nanSeries(n),
		Position: nanSeries(n),
	}
	std := rollingStd(closes, period)
	for i := range closes {
		if math.IsNaN(bb.Middle[i]) || math.IsNaN(std[i]) {
			continue
		}
		bb.Upper[i] = bb.Middle[i] + k*std[i]
		bb.Lower[i] = bb.Middle[i] - k*std[i]
		if bb.Middle[i] != 0 {
			bb.Width[i] = (bb.Upper[i] - bb.Lower[i]) / bb.Middle[i]
		}
		bb.Position[i] = BandPosition(closes[i], bb.Upper[i], bb.Lower[i])
	}
	return bb
}

// BandPosition returns where price sits between the bands in percent.
// A zero-width band reads 50.
func BandPosition(price, upper, lower float64) float64 {
	if upper-lower <= 0 {
		return 50
	}
	return (price - lower) / (upper - lower) * 100
}
