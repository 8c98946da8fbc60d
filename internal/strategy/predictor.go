package strategy

import (
	"math"

	"CycleSentinel/internal/calculator"
	"CycleSentinel/internal/model"
)

// Projection weights.
const (
	weightBandExpansion = 0.20
	weightHighBreakout  = 0.25
	weightRecentTrend   = 0.25
	weightATR           = 0.15
	weightMA200Headroom = 0.15
)

var rsiMultiplierBands = []Band[float64]{
	{Above(85), 0.85},
	{Above(75), 0.95},
	{Above(65), 1.0},
	{Above(50), 1.05},
	{Always, 1.15},
}

var headroomBands = []Band[float64]{
	{Above(80), 1.05},
	{Above(50), 1.10},
	{Above(30), 1.20},
	{Above(15), 1.30},
	{Always, 1.40},
}

// PredictPeak estimates a plausible cycle-top price from the snapshot.
// The result is always within [1.05, 1.80] times the current price.
func PredictPeak(snap *model.IndicatorSnapshot) model.PeakPrediction {
	price := snap.LastClose()
	high52, _, err := calculator.Calculate52WeekRange(snap.Bars)
	if err != nil {
		high52 = math.NaN()
	}
	recentHigh, _, err := calculator.Calculate30DayRange(snap.Bars)
	if err != nil {
		recentHigh = math.NaN()
	}
	upper := calculator.Last(snap.BBUpper)
	lower := calculator.Last(snap.BBLower)
	atr := calculator.Last(snap.ATR)
	ma200 := calculator.Last(snap.SMA200)
	rsi := calculator.Last(snap.RSI)

	dev := math.NaN()
	if ma200 > 0 {
		dev = (price - ma200) / ma200 * 100
	}

	projections := []model.PeakProjection{
		{Method: "Bollinger expansion", Weight: weightBandExpansion, Price: upper + (upper-lower)*0.3},
		{Method: "52-week high breakout", Weight: weightHighBreakout, Price: highBreakout(price, high52)},
		{Method: "recent high trend", Weight: weightRecentTrend, Price: recentTrend(price, recentHigh)},
		{Method: "ATR multiple", Weight: weightATR, Price: price + 4*atr},
		{Method: "MA200 headroom", Weight: weightMA200Headroom, Price: headroom(price, dev)},
	}

	blended := 0.0
	for i := range projections {
		if math.IsNaN(projections[i].Price) || projections[i].Price <= 0 {
			projections[i].Price = price
		}
		blended += projections[i].Price * projections[i].Weight
	}

	mult := Lookup(rsi, rsiMultiplierBands, 1.0)
	peak := calculator.Clamp(blended*mult, price*1.05, price*1.80)

	confidence := "low"
	switch {
	case rsi < 70 && dev < 30:
		confidence = "high"
	case rsi < 80:
		confidence = "medium"
	}

	upside := 0.0
	if price > 0 {
		upside = (peak - price) / price * 100
	}
	return model.PeakPrediction{
		Price:       peak,
		Confidence:  confidence,
		UpsidePct:   upside,
		Multiplier:  mult,
		Projections: projections,
	}
}

func highBreakout(price, high52 float64) float64 {
	if math.IsNaN(high52) {
		return math.NaN()
	}
	if price >= high52*0.95 {
		return high52 * 1.05
	}
	return high52 * 1.02
}

func recentTrend(price, recentHigh float64) float64 {
	if math.IsNaN(recentHigh) || recentHigh <= 0 {
		return math.NaN()
	}
	ratio := price / recentHigh
	switch {
	case ratio >= 0.98:
		return recentHigh * 1.15
	case ratio >= 0.93:
		return recentHigh * 1.12
	default:
		return recentHigh * 1.08
	}
}

func headroom(price, dev float64) float64 {
	if math.IsNaN(dev) {
		return math.NaN()
	}
	return price * Lookup(dev, headroomBands, 1.40)
}
