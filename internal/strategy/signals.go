package strategy

import (
	"fmt"
	"math"

	"CycleSentinel/internal/calculator"
	"CycleSentinel/internal/model"
)

// Indicator names, in scoring order.
const (
	NameRSI       = "RSI"
	NameMACD      = "MACD"
	NameSMA       = "Moving Averages"
	NameBollinger = "Bollinger Bands"
	NameStoch     = "Stochastic"
	NameEMA       = "EMA"
	NameOBV       = "OBV"
	NameADX       = "ADX"
	NameIchimoku  = "Ichimoku"
	NameATR       = "ATR"
	NameFearGreed = "Fear & Greed"
	NameFibonacci = "Fibonacci"
)

const noDataLabel = "no data"

func noData(name string) model.IndicatorSignal {
	return model.IndicatorSignal{Name: name, Value: "n/a", Label: noDataLabel}
}

func signal(name, value string, v Verdict, detail string) model.IndicatorSignal {
	return model.IndicatorSignal{Name: name, Value: value, Label: v.Label, Detail: detail, Score: v.Score}
}

// ScoreAll scores every indicator on the latest bar of the snapshot.
func ScoreAll(snap *model.IndicatorSnapshot) []model.IndicatorSignal {
	return []model.IndicatorSignal{
		ScoreRSI(calculator.Last(snap.RSI)),
		ScoreMACD(snap),
		ScoreSMA(snap),
		ScoreBollinger(snap),
		ScoreStochastic(calculator.Last(snap.StochK), calculator.Last(snap.StochD)),
		ScoreEMA(snap),
		ScoreOBV(snap),
		ScoreADX(calculator.Last(snap.ADX), calculator.Last(snap.PlusDI), calculator.Last(snap.MinusDI)),
		ScoreIchimoku(snap),
		ScoreATR(calculator.Last(snap.ATR), snap.LastClose()),
		ScoreFearGreed(calculator.Last(snap.FearGreed)),
		ScoreFibonacci(snap),
	}
}

var rsiBands = []Band[Verdict]{
	{Above(70), Verdict{"overbought", -2}},
	{Above(60), Verdict{"buyers in control", -1}},
	{Below(30), Verdict{"oversold", 2}},
	{Below(40), Verdict{"sellers in control", 1}},
	{Always, Verdict{"neutral", 0}},
}

// ScoreRSI scores the latest RSI reading.
func ScoreRSI(rsi float64) model.IndicatorSignal {
	if math.IsNaN(rsi) {
		return noData(NameRSI)
	}
	return signal(NameRSI, fmt.Sprintf("%.2f", rsi), Lookup(rsi, rsiBands, Verdict{}), "")
}

type macdInput struct{ line, sig, hist, prevHist float64 }

var macdRules = []Rule[macdInput]{
	{func(m macdInput) bool { return m.line > m.sig && m.hist > 0 && m.hist > m.prevHist }, Verdict{"strong uptrend", 2}},
	{func(m macdInput) bool { return m.line > m.sig && m.hist > 0 }, Verdict{"uptrend", 1}},
	{func(m macdInput) bool { return m.line < m.sig && m.hist < 0 && m.hist < m.prevHist }, Verdict{"strong downtrend", -2}},
	{func(m macdInput) bool { return m.line < m.sig && m.hist < 0 }, Verdict{"downtrend", -1}},
}

// ScoreMACD compares the MACD line with its signal and the histogram with the prior bar.
func ScoreMACD(snap *model.IndicatorSnapshot) model.IndicatorSignal {
	in := macdInput{
		line:     calculator.Last(snap.MACD),
		sig:      calculator.Last(snap.MACDSignal),
		hist:     calculator.Last(snap.MACDHist),
		prevHist: calculator.Prev(snap.MACDHist),
	}
	if anyNaN(in.line, in.sig, in.hist) {
		return noData(NameMACD)
	}
	v := Decide(in, macdRules, Verdict{"possible trend reversal", 0})
	return signal(NameMACD, fmt.Sprintf("%.2f, signal %.2f, histogram %.2f", in.line, in.sig, in.hist), v, "")
}

type stackInput struct{ price, a, b, c float64 }

var smaRules = []Rule[stackInput]{
	{func(s stackInput) bool { return s.price > s.a && s.a > s.b && s.b > s.c }, Verdict{"strong uptrend (full bullish alignment)", 2}},
	{func(s stackInput) bool { return s.price > s.a && s.price > s.b && s.price > s.c }, Verdict{"uptrend", 1}},
	{func(s stackInput) bool { return s.price < s.a && s.a < s.b && s.b < s.c }, Verdict{"strong downtrend (full bearish alignment)", -2}},
	{func(s stackInput) bool { return s.price < s.a && s.price < s.b && s.price < s.c }, Verdict{"downtrend", -1}},
}

// ScoreSMA scores price against the 20/50/200 simple moving averages.
func ScoreSMA(snap *model.IndicatorSnapshot) model.IndicatorSignal {
	in := stackInput{
		price: snap.LastClose(),
		a:     calculator.Last(snap.SMA20),
		b:     calculator.Last(snap.SMA50),
		c:     calculator.Last(snap.SMA200),
	}
	if anyNaN(in.a, in.b, in.c) {
		return noData(NameSMA)
	}
	v := Decide(in, smaRules, Verdict{"mixed trend", 0})
	var detail string
	switch v.Score {
	case 2:
		detail = "price > MA20 > MA50 > MA200"
	case 1:
		detail = "price above every moving average"
	case -2:
		detail = "price < MA20 < MA50 < MA200"
	case -1:
		detail = "price below every moving average"
	default:
		if in.price > in.c {
			detail = "long-term uptrend intact (price > MA200)"
		} else {
			detail = "long-term downtrend (price <= MA200)"
		}
	}
	value := fmt.Sprintf("price %.2f, MA20 %.2f, MA50 %.2f, MA200 %.2f", in.price, in.a, in.b, in.c)
	return signal(NameSMA, value, v, detail)
}

var bollingerBands = []Band[Verdict]{
	{Above(90), Verdict{"strongly overbought", -2}},
	{Above(75), Verdict{"near upper band", -1}},
	{Below(10), Verdict{"strongly oversold", 2}},
	{Below(25), Verdict{"near lower band", 1}},
	{Always, Verdict{"mid band", 0}},
}

// ScoreBollinger scores the band position of the latest close.
func ScoreBollinger(snap *model.IndicatorSnapshot) model.IndicatorSignal {
	pos := calculator.Last(snap.BBPosition)
	if math.IsNaN(pos) {
		return noData(NameBollinger)
	}
	value := fmt.Sprintf("position %.1f%%, width %.4f", pos, calculator.Last(snap.BBWidth))
	detail := fmt.Sprintf("upper %.2f, middle %.2f, lower %.2f",
		calculator.Last(snap.BBUpper), calculator.Last(snap.BBMiddle), calculator.Last(snap.BBLower))
	return signal(NameBollinger, value, Lookup(pos, bollingerBands, Verdict{}), detail)
}

type stochInput struct{ k, d float64 }

var stochRules = []Rule[stochInput]{
	{func(s stochInput) bool { return s.k > 80 && s.d > 80 }, Verdict{"strongly overbought", -2}},
	{func(s stochInput) bool { return s.k > 70 && s.d > 70 }, Verdict{"overbought", -1}},
	{func(s stochInput) bool { return s.k < 20 && s.d < 20 }, Verdict{"strongly oversold", 2}},
	{func(s stochInput) bool { return s.k < 30 && s.d < 30 }, Verdict{"oversold", 1}},
	{func(s stochInput) bool { return s.k > s.d && s.k < 50 }, Verdict{"possible bullish reversal", 0.5}},
	{func(s stochInput) bool { return s.k < s.d && s.k > 50 }, Verdict{"possible bearish reversal", -0.5}},
}

// ScoreStochastic scores %K and %D together.
func ScoreStochastic(k, d float64) model.IndicatorSignal {
	if anyNaN(k, d) {
		return noData(NameStoch)
	}
	v := Decide(stochInput{k, d}, stochRules, Verdict{"neutral", 0})
	return signal(NameStoch, fmt.Sprintf("%%K %.2f, %%D %.2f", k, d), v, "")
}

type emaInput struct{ e12, e26, e50, e100 float64 }

var emaRules = []Rule[emaInput]{
	{func(e emaInput) bool { return e.e12 > e.e26 && e.e26 > e.e50 && e.e50 > e.e100 }, Verdict{"perfect bullish alignment", 2}},
	{func(e emaInput) bool { return e.e26 > e.e50 && e.e50 > e.e100 }, Verdict{"mid/long-term bullish", 1.5}},
	{func(e emaInput) bool { return e.e12 < e.e26 && e.e26 < e.e50 && e.e50 < e.e100 }, Verdict{"perfect bearish alignment", -2}},
	{func(e emaInput) bool { return e.e26 < e.e50 && e.e50 < e.e100 }, Verdict{"mid/long-term bearish", -1.5}},
}

// ScoreEMA scores the ordering of the 12/26/50/100 exponential averages.
func ScoreEMA(snap *model.IndicatorSnapshot) model.IndicatorSignal {
	in := emaInput{
		e12:  calculator.Last(snap.EMA12),
		e26:  calculator.Last(snap.EMA26),
		e50:  calculator.Last(snap.EMA50),
		e100: calculator.Last(snap.EMA100),
	}
	if anyNaN(in.e12, in.e26, in.e50, in.e100) {
		return noData(NameEMA)
	}
	v := Decide(in, emaRules, Verdict{"mixed", 0})
	value := fmt.Sprintf("EMA12 %.2f, EMA26 %.2f, EMA50 %.2f, EMA100 %.2f", in.e12, in.e26, in.e50, in.e100)
	return signal(NameEMA, value, v, "")
}

type obvInput struct{ obv, ma, prev float64 }

var obvRules = []Rule[obvInput]{
	{func(o obvInput) bool { return o.obv > o.ma && o.obv > o.prev }, Verdict{"strong inflow", 1.5}},
	{func(o obvInput) bool { return o.obv > o.ma }, Verdict{"inflow", 1}},
	{func(o obvInput) bool { return o.obv < o.ma && o.obv < o.prev }, Verdict{"strong outflow", -1.5}},
	{func(o obvInput) bool { return o.obv < o.ma }, Verdict{"outflow", -1}},
}

// ScoreOBV scores on-balance volume against its 20-bar average and the prior bar.
func ScoreOBV(snap *model.IndicatorSnapshot) model.IndicatorSignal {
	in := obvInput{
		obv:  calculator.Last(snap.OBV),
		ma:   calculator.Last(snap.OBVMA),
		prev: calculator.Prev(snap.OBV),
	}
	if anyNaN(in.obv, in.ma) {
		return noData(NameOBV)
	}
	v := Decide(in, obvRules, Verdict{"balanced", 0})
	return signal(NameOBV, fmt.Sprintf("%.0f (MA20 %.0f)", in.obv, in.ma), v, "")
}

type adxInput struct{ adx, plus, minus float64 }

var adxRules = []Rule[adxInput]{
	{func(a adxInput) bool { return a.adx > 40 && a.plus > a.minus }, Verdict{"strong uptrend", 1.5}},
	{func(a adxInput) bool { return a.adx > 40 && a.minus > a.plus }, Verdict{"strong downtrend", -1.5}},
	{func(a adxInput) bool { return a.adx > 25 && a.plus > a.minus }, Verdict{"uptrend", 1}},
	{func(a adxInput) bool { return a.adx > 25 && a.minus > a.plus }, Verdict{"downtrend", -1}},
	{func(a adxInput) bool { return a.adx > 25 }, Verdict{"trend without direction", 0}},
}

// ScoreADX scores trend strength, taking direction from the DI lines.
func ScoreADX(adx, plusDI, minusDI float64) model.IndicatorSignal {
	if anyNaN(adx, plusDI, minusDI) {
		return noData(NameADX)
	}
	v := Decide(adxInput{adx, plusDI, minusDI}, adxRules, Verdict{"weak trend", 0})
	return signal(NameADX, fmt.Sprintf("%.2f (+DI %.2f, -DI %.2f)", adx, plusDI, minusDI), v, "")
}

// ScoreIchimoku scores price against the cloud. The conversion/base cross
// only adds detail.
func ScoreIchimoku(snap *model.IndicatorSnapshot) model.IndicatorSignal {
	price := snap.LastClose()
	conv := calculator.Last(snap.IchimokuConversion)
	base := calculator.Last(snap.IchimokuBase)
	spanA := calculator.Last(snap.IchimokuSpanA)
	spanB := calculator.Last(snap.IchimokuSpanB)
	if anyNaN(conv, base, spanA, spanB) {
		return noData(NameIchimoku)
	}
	top, bottom := math.Max(spanA, spanB), math.Min(spanA, spanB)

	var v Verdict
	switch {
	case price > top:
		v = Verdict{"above the cloud", 2}
	case price < bottom:
		v = Verdict{"below the cloud", -2}
	default:
		v = Verdict{"inside the cloud", 0}
	}

	var detail string
	switch {
	case conv > base:
		detail = "conversion above base (bullish momentum)"
	case conv < base:
		detail = "conversion below base (bearish momentum)"
	default:
		detail = "conversion equals base"
	}
	value := fmt.Sprintf("cloud %.2f-%.2f, conversion %.2f, base %.2f", bottom, top, conv, base)
	return signal(NameIchimoku, value, v, detail)
}

var atrBands = []Band[Verdict]{
	{Above(5), Verdict{"very high volatility", -0.5}},
	{Above(3), Verdict{"high volatility", -0.25}},
	{Above(1.5), Verdict{"normal volatility", 0}},
	{Always, Verdict{"low volatility", 0.5}},
}

// ScoreATR scores volatility as ATR relative to price.
func ScoreATR(atr, price float64) model.IndicatorSignal {
	if anyNaN(atr, price) || price <= 0 {
		return noData(NameATR)
	}
	pct := atr / price * 100
	return signal(NameATR, fmt.Sprintf("%.2f (%.2f%% of price)", atr, pct), Lookup(pct, atrBands, Verdict{}), "")
}

var fearGreedBands = []Band[Verdict]{
	{AtLeast(75), Verdict{"extreme greed", -2}},
	{AtLeast(60), Verdict{"greed", -1}},
	{AtLeast(40), Verdict{"neutral", 0}},
	{AtLeast(25), Verdict{"fear", 1}},
	{Always, Verdict{"extreme fear", 2}},
}

// ScoreFearGreed scores the composite sentiment index contrarian-style.
func ScoreFearGreed(index float64) model.IndicatorSignal {
	if math.IsNaN(index) {
		return noData(NameFearGreed)
	}
	return signal(NameFearGreed, fmt.Sprintf("%.1f", index), Lookup(index, fearGreedBands, Verdict{}), "")
}

// ScoreFibonacci scores price against the retracement levels of the trailing
// 52-bar range. The deepest band is treated as a contrarian buy zone.
func ScoreFibonacci(snap *model.IndicatorSnapshot) model.IndicatorSignal {
	price := snap.LastClose()
	l236 := calculator.Last(snap.Fib236)
	l382 := calculator.Last(snap.Fib382)
	l500 := calculator.Last(snap.Fib500)
	l618 := calculator.Last(snap.Fib618)
	if anyNaN(l236, l382, l500, l618) {
		return noData(NameFibonacci)
	}
	bands := []Band[Verdict]{
		{AtLeast(l236), Verdict{"above 23.6% retracement (strong)", 1}},
		{AtLeast(l382), Verdict{"between 23.6% and 38.2%", 0.5}},
		{AtLeast(l500), Verdict{"between 38.2% and 50%", 0}},
		{AtLeast(l618), Verdict{"between 50% and 61.8%", -0.5}},
		{Always, Verdict{"below 61.8% (deep retracement buy zone)", 1}},
	}
	value := fmt.Sprintf("23.6%% %.2f, 38.2%% %.2f, 50%% %.2f, 61.8%% %.2f", l236, l382, l500, l618)
	return signal(NameFibonacci, value, Lookup(price, bands, Verdict{}), "")
}
