package model

// IndicatorSnapshot holds every derived indicator series for one run.
// Each slice has the same length as the input bars; leading values are NaN
// until the indicator's window is filled.
type IndicatorSnapshot struct {
	Bars []OHLCV

	RSI []float64

	MACD       []float64
	MACDSignal []float64
	MACDHist   []float64

	SMA20  []float64
	SMA50  []float64
	SMA200 []float64

	EMA12  []float64
	EMA26  []float64
	EMA50  []float64
	EMA100 []float64

	BBUpper    []float64
	BBMiddle   []float64
	BBLower    []float64
	BBWidth    []float64
	BBPosition []float64

	StochK []float64
	StochD []float64

	ATR []float64

	OBV   []float64
	OBVMA []float64

	ADX     []float64
	PlusDI  []float64
	MinusDI []float64

	IchimokuConversion []float64
	IchimokuBase       []float64
	IchimokuSpanA      []float64
	IchimokuSpanB      []float64

	Fib236 []float64
	Fib382 []float64
	Fib500 []float64
	Fib618 []float64

	FearGreed []float64
}

// Len returns the number of bars covered by the snapshot.
func (s *IndicatorSnapshot) Len() int { return len(s.Bars) }

// LastClose returns the close of the latest bar.
func (s *IndicatorSnapshot) LastClose() float64 {
	return s.Bars[len(s.Bars)-1].Close
}
