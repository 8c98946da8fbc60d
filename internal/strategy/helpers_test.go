package strategy

import (
	"math"
	"time"

	"CycleSentinel/internal/model"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// flatSeries returns n bars at a constant price with constant volume.
func flatSeries(n int, price float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time: testStart.AddDate(0, 0, i), Open: price, High: price, Low: price, Close: price, Volume: 1000,
		}
	}
	return bars
}

// compoundingSeries grows the close by `rate` per bar.
func compoundingSeries(n int, start, rate float64) []model.OHLCV {
	bars := make([]model.OHLCV, n)
	p := start
	for i := range bars {
		bars[i] = model.OHLCV{
			Time: testStart.AddDate(0, 0, i), Open: p / (1 + rate), High: p * 1.005, Low: p * 0.995, Close: p, Volume: 1000,
		}
		p *= 1 + rate
	}
	return bars
}

// pointSnapshot builds a one-bar snapshot with every series undefined.
// Tests fill in the series they need.
func pointSnapshot(price float64) *model.IndicatorSnapshot {
	nan := func() []float64 { return []float64{math.NaN()} }
	return &model.IndicatorSnapshot{
		Bars: []model.OHLCV{{Time: testStart, Open: price, High: price, Low: price, Close: price, Volume: 1000}},
		RSI:  nan(), MACD: nan(), MACDSignal: nan(), MACDHist: nan(),
		SMA20: nan(), SMA50: nan(), SMA200: nan(),
		EMA12: nan(), EMA26: nan(), EMA50: nan(), EMA100: nan(),
		BBUpper: nan(), BBMiddle: nan(), BBLower: nan(), BBWidth: nan(), BBPosition: nan(),
		StochK: nan(), StochD: nan(), ATR: nan(), OBV: nan(), OBVMA: nan(),
		ADX: nan(), PlusDI: nan(), MinusDI: nan(),
		IchimokuConversion: nan(), IchimokuBase: nan(), IchimokuSpanA: nan(), IchimokuSpanB: nan(),
		Fib236: nan(), Fib382: nan(), Fib500: nan(), Fib618: nan(),
		FearGreed: nan(),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
