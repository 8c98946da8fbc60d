package calculator

import "CycleSentinel/internal/model"

// Standard indicator windows.
const (
	RSIPeriod       = 14
	MACDFast        = 12
	MACDSlow        = 26
	MACDSignal      = 9
	BollingerPeriod = 20
	BollingerK      = 2.0
	StochKPeriod    = 14
	StochDPeriod    = 3
	OBVMAPeriod     = 20
	ADXPeriod       = 14
	FibPeriod       = 52

	// LongestWindow is the history needed for every indicator to be defined.
	LongestWindow = 200
)

// Compute derives the full indicator snapshot from ordered daily bars.
// Short histories leave the longer-window series as NaN.
func Compute(bars []model.OHLCV) *model.IndicatorSnapshot {
	closes := extractCloses(bars)
	highs := extractHighs(bars)
	lows := extractLows(bars)
	volumes := extractVolumes(bars)

	snap := &model.IndicatorSnapshot{Bars: bars}

	snap.RSI = RSISeries(closes, RSIPeriod)
	snap.MACD, snap.MACDSignal, snap.MACDHist = MACDSeries(closes, MACDFast, MACDSlow, MACDSignal)

	snap.SMA20 = SMASeries(closes, 20)
	snap.SMA50 = SMASeries(closes, 50)
	snap.SMA200 = SMASeries(closes, 200)

	snap.EMA12 = EMASeries(closes, 12)
	snap.EMA26 = EMASeries(closes, 26)
	snap.EMA50 = EMASeries(closes, 50)
	snap.EMA100 = EMASeries(closes, 100)

	bb := BollingerSeries(closes, BollingerPeriod, BollingerK)
	snap.BBUpper, snap.BBMiddle, snap.BBLower = bb.Upper, bb.Middle, bb.Lower
	snap.BBWidth, snap.BBPosition = bb.Width, bb.Position

	snap.StochK, snap.StochD = StochasticSeries(highs, lows, closes, StochKPeriod, StochDPeriod)

	snap.ATR = ATRSeries(highs, lows, closes)

	snap.OBV = OBVSeries(closes, volumes)
	snap.OBVMA = SMASeries(snap.OBV, OBVMAPeriod)

	adx := ADXSeries(highs, lows, closes, ADXPeriod)
	snap.ADX, snap.PlusDI, snap.MinusDI = adx.ADX, adx.PlusDI, adx.MinusDI

	ich := IchimokuSeries(highs, lows)
	snap.IchimokuConversion, snap.IchimokuBase = ich.Conversion, ich.Base
	snap.IchimokuSpanA, snap.IchimokuSpanB = ich.SpanA, ich.SpanB

	fib := FibonacciSeries(highs, lows, FibPeriod)
	snap.Fib236, snap.Fib382, snap.Fib500, snap.Fib618 = fib.L236, fib.L382, fib.L500, fib.L618

	snap.FearGreed = FearGreedSeries(snap.RSI, snap.BBPosition, volumes, snap.SMA20, snap.SMA50)

	return snap
}
