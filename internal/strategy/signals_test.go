package strategy

import (
	"math"
	"testing"

	"CycleSentinel/internal/calculator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRSI(t *testing.T) {
	tests := []struct {
		rsi  float64
		want float64
	}{
		{95, -2},
		{70.01, -2},
		{70, -1},
		{65, -1},
		{60, 0},
		{50, 0},
		{40, 0},
		{39.9, 1},
		{30, 1},
		{29.9, 2},
		{0, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreRSI(tt.rsi).Score, "rsi %v", tt.rsi)
	}
}

func TestScoreRSI_ScoreSet(t *testing.T) {
	allowed := map[float64]bool{-2: true, -1: true, 0: true, 1: true, 2: true}
	for rsi := 0.0; rsi <= 100; rsi += 0.5 {
		assert.True(t, allowed[ScoreRSI(rsi).Score], "rsi %v", rsi)
	}
}

func TestScoreRSI_NoData(t *testing.T) {
	s := ScoreRSI(math.NaN())
	assert.Equal(t, 0.0, s.Score)
	assert.Equal(t, noDataLabel, s.Label)
}

func TestScoreMACD(t *testing.T) {
	tests := []struct {
		name       string
		line, sig  float64
		hist, prev float64
		want       float64
	}{
		{"strong up", 5, 3, 2, 1, 2},
		{"up fading", 5, 3, 2, 3, 1},
		{"strong down", -5, -3, -2, -1, -2},
		{"down easing", -5, -3, -2, -3, -1},
		{"flat", 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := pointSnapshot(100)
			snap.MACD = []float64{tt.line, tt.line}
			snap.MACDSignal = []float64{tt.sig, tt.sig}
			snap.MACDHist = []float64{tt.prev, tt.hist}
			assert.Equal(t, tt.want, ScoreMACD(snap).Score)
		})
	}
}

func TestScoreSMA(t *testing.T) {
	tests := []struct {
		name              string
		price             float64
		ma20, ma50, ma200 float64
		want              float64
	}{
		{"full bullish", 110, 105, 100, 90, 2},
		{"above all, unordered", 110, 100, 105, 90, 1},
		{"full bearish", 80, 85, 90, 100, -2},
		{"below all, unordered", 80, 90, 85, 100, -1},
		{"mixed", 100, 105, 95, 90, 0},
		{"all equal", 100, 100, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := pointSnapshot(tt.price)
			snap.SMA20 = []float64{tt.ma20}
			snap.SMA50 = []float64{tt.ma50}
			snap.SMA200 = []float64{tt.ma200}
			assert.Equal(t, tt.want, ScoreSMA(snap).Score)
		})
	}
}

func TestScoreBollinger(t *testing.T) {
	tests := []struct {
		pos  float64
		want float64
	}{
		{95, -2}, {90, -1}, {76, -1}, {75, 0}, {50, 0}, {25, 0}, {24, 1}, {10, 1}, {9, 2},
	}
	for _, tt := range tests {
		snap := pointSnapshot(100)
		snap.BBPosition = []float64{tt.pos}
		assert.Equal(t, tt.want, ScoreBollinger(snap).Score, "position %v", tt.pos)
	}
}

func TestScoreBollinger_ZeroWidthBand(t *testing.T) {
	snap := pointSnapshot(100)
	snap.BBUpper = []float64{100}
	snap.BBLower = []float64{100}
	snap.BBPosition = []float64{calculator.BandPosition(100, 100, 100)}
	s := ScoreBollinger(snap)
	assert.Equal(t, 0.0, s.Score)
	assert.Contains(t, s.Value, "50.0%")
}

func TestScoreStochastic(t *testing.T) {
	tests := []struct {
		k, d float64
		want float64
	}{
		{85, 82, -2},
		{85, 75, -1},
		{75, 72, -1},
		{15, 18, 2},
		{25, 15, 1},
		{40, 35, 0.5},
		{60, 65, -0.5},
		{60, 55, 0},
		{50, 50, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreStochastic(tt.k, tt.d).Score, "k=%v d=%v", tt.k, tt.d)
	}
}

func TestScoreEMA(t *testing.T) {
	tests := []struct {
		name                string
		e12, e26, e50, e100 float64
		want                float64
	}{
		{"perfect bullish", 110, 105, 100, 95, 2},
		{"mid/long bullish", 100, 105, 100, 95, 1.5},
		{"perfect bearish", 90, 95, 100, 105, -2},
		{"mid/long bearish", 100, 95, 100, 105, -1.5},
		{"mixed", 100, 100, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := pointSnapshot(100)
			snap.EMA12 = []float64{tt.e12}
			snap.EMA26 = []float64{tt.e26}
			snap.EMA50 = []float64{tt.e50}
			snap.EMA100 = []float64{tt.e100}
			assert.Equal(t, tt.want, ScoreEMA(snap).Score)
		})
	}
}

func TestScoreOBV(t *testing.T) {
	tests := []struct {
		name          string
		prev, obv, ma float64
		want          float64
	}{
		{"strong inflow", 90, 100, 80, 1.5},
		{"inflow", 110, 100, 80, 1},
		{"strong outflow", 110, 100, 120, -1.5},
		{"outflow", 90, 100, 120, -1},
		{"balanced", 100, 100, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := pointSnapshot(100)
			snap.OBV = []float64{tt.prev, tt.obv}
			snap.OBVMA = []float64{tt.ma}
			assert.Equal(t, tt.want, ScoreOBV(snap).Score)
		})
	}
}

func TestScoreADX(t *testing.T) {
	tests := []struct {
		adx, plus, minus float64
		want             float64
		label            string
	}{
		{45, 30, 10, 1.5, "strong uptrend"},
		{45, 10, 30, -1.5, "strong downtrend"},
		{30, 30, 10, 1, "uptrend"},
		{30, 10, 30, -1, "downtrend"},
		{30, 20, 20, 0, "trend without direction"},
		{25, 30, 10, 0, "weak trend"},
		{10, 10, 30, 0, "weak trend"},
	}
	for _, tt := range tests {
		s := ScoreADX(tt.adx, tt.plus, tt.minus)
		assert.Equal(t, tt.want, s.Score, "adx %v", tt.adx)
		assert.Equal(t, tt.label, s.Label)
	}
}

func TestScoreIchimoku(t *testing.T) {
	build := func(price float64) float64 {
		snap := pointSnapshot(price)
		snap.IchimokuConversion = []float64{105}
		snap.IchimokuBase = []float64{100}
		snap.IchimokuSpanA = []float64{102.5}
		snap.IchimokuSpanB = []float64{95}
		return ScoreIchimoku(snap).Score
	}
	assert.Equal(t, 2.0, build(110))
	assert.Equal(t, 0.0, build(100))
	assert.Equal(t, 0.0, build(102.5))
	assert.Equal(t, -2.0, build(90))

	snap := pointSnapshot(110)
	snap.IchimokuConversion = []float64{105}
	snap.IchimokuBase = []float64{100}
	snap.IchimokuSpanA = []float64{102.5}
	snap.IchimokuSpanB = []float64{95}
	assert.Contains(t, ScoreIchimoku(snap).Detail, "bullish")
}

func TestScoreATR(t *testing.T) {
	tests := []struct {
		atr  float64
		want float64
	}{
		{6, -0.5}, {5, -0.25}, {3.5, -0.25}, {3, 0}, {2, 0}, {1.5, 0.5}, {0, 0.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreATR(tt.atr, 100).Score, "atr %v", tt.atr)
	}
	assert.Equal(t, noDataLabel, ScoreATR(1, 0).Label)
}

func TestScoreFearGreed(t *testing.T) {
	tests := []struct {
		index float64
		want  float64
	}{
		{90, -2}, {75, -2}, {74.9, -1}, {60, -1}, {50, 0}, {40, 0}, {39, 1}, {25, 1}, {24.9, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreFearGreed(tt.index).Score, "index %v", tt.index)
	}
}

func TestScoreFibonacci(t *testing.T) {
	// 52-bar range 100..200.
	score := func(price float64) float64 {
		snap := pointSnapshot(price)
		snap.Fib236 = []float64{200 - 100*0.236}
		snap.Fib382 = []float64{200 - 100*0.382}
		snap.Fib500 = []float64{150}
		snap.Fib618 = []float64{200 - 100*0.618}
		return ScoreFibonacci(snap).Score
	}
	assert.Equal(t, 1.0, score(200), "at the 52-bar high")
	assert.Equal(t, 1.0, score(100), "at the 52-bar low")
	assert.Equal(t, 0.5, score(170))
	assert.Equal(t, 0.0, score(155))
	assert.Equal(t, 0.0, score(150))
	assert.Equal(t, -0.5, score(140))
	assert.Equal(t, 1.0, score(130))
}

func TestScoreAll_UndefinedSnapshotIsNeutral(t *testing.T) {
	signals := ScoreAll(pointSnapshot(100))
	require.Len(t, signals, 12)
	for _, s := range signals {
		assert.Equal(t, 0.0, s.Score, s.Name)
	}
}
