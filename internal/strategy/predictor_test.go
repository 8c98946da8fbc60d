package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictPeak_Blend(t *testing.T) {
	snap := pointSnapshot(100)
	snap.BBUpper = []float64{110}
	snap.BBLower = []float64{90}
	snap.ATR = []float64{3}
	snap.SMA200 = []float64{80}
	snap.RSI = []float64{60}

	p := PredictPeak(snap)
	require.Len(t, p.Projections, 5)
	assert.InDelta(t, 116.0, p.Projections[0].Price, 1e-9)
	assert.InDelta(t, 105.0, p.Projections[1].Price, 1e-9)
	assert.InDelta(t, 115.0, p.Projections[2].Price, 1e-9)
	assert.InDelta(t, 112.0, p.Projections[3].Price, 1e-9)
	assert.InDelta(t, 130.0, p.Projections[4].Price, 1e-9)
	assert.Equal(t, 1.05, p.Multiplier)
	assert.InDelta(t, 114.5*1.05, p.Price, 1e-9)
	assert.Equal(t, "high", p.Confidence)
	assert.InDelta(t, 20.225, p.UpsidePct, 1e-9)
}

func TestPredictPeak_ClampedHigh(t *testing.T) {
	snap := pointSnapshot(100)
	snap.BBUpper = []float64{1000}
	snap.BBLower = []float64{0}
	snap.ATR = []float64{500}
	snap.SMA200 = []float64{99}
	snap.RSI = []float64{40}

	p := PredictPeak(snap)
	assert.InDelta(t, 180.0, p.Price, 1e-9)
	assert.Equal(t, 1.15, p.Multiplier)
}

func TestPredictPeak_ClampedLow(t *testing.T) {
	snap := pointSnapshot(100)
	snap.BBUpper = []float64{10}
	snap.BBLower = []float64{10}
	snap.ATR = []float64{0}
	snap.SMA200 = []float64{50}
	snap.RSI = []float64{90}

	p := PredictPeak(snap)
	assert.InDelta(t, 105.0, p.Price, 1e-9)
	assert.Equal(t, 0.85, p.Multiplier)
	assert.Equal(t, "low", p.Confidence)
}

func TestPredictPeak_UndefinedComponentsUsePrice(t *testing.T) {
	p := PredictPeak(pointSnapshot(100))
	assert.InDelta(t, 100.0, p.Projections[0].Price, 1e-9)
	assert.InDelta(t, 100.0, p.Projections[3].Price, 1e-9)
	assert.InDelta(t, 100.0, p.Projections[4].Price, 1e-9)
	assert.Equal(t, 1.0, p.Multiplier)
	assert.InDelta(t, 105.0, p.Price, 1e-9)
}

func TestPredictPeak_AlwaysWithinBounds(t *testing.T) {
	for _, rsi := range []float64{10, 55, 70, 80, 95} {
		for _, atr := range []float64{0, 5, 50, 5000} {
			snap := pointSnapshot(250)
			snap.BBUpper = []float64{250 + atr}
			snap.BBLower = []float64{250 - atr}
			snap.ATR = []float64{atr}
			snap.SMA200 = []float64{125}
			snap.RSI = []float64{rsi}
			p := PredictPeak(snap)
			assert.GreaterOrEqual(t, p.Price, 250*1.05-1e-9)
			assert.LessOrEqual(t, p.Price, 250*1.80+1e-9)
		}
	}
}

func TestPredictPeak_Confidence(t *testing.T) {
	tests := []struct {
		rsi, ma200 float64
		want       string
	}{
		{65, 90, "high"},
		{65, 70, "medium"},
		{75, 90, "medium"},
		{85, 90, "low"},
	}
	for _, tt := range tests {
		snap := pointSnapshot(100)
		snap.RSI = []float64{tt.rsi}
		snap.SMA200 = []float64{tt.ma200}
		assert.Equal(t, tt.want, PredictPeak(snap).Confidence, "rsi %v ma200 %v", tt.rsi, tt.ma200)
	}
}
