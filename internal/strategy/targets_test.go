package strategy

import (
	"math"
	"testing"

	"CycleSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func targetSnapshot() *model.IndicatorSnapshot {
	snap := pointSnapshot(100)
	snap.BBUpper = []float64{110}
	snap.BBLower = []float64{92}
	snap.SMA200 = []float64{80}
	snap.ATR = []float64{3}
	snap.RSI = []float64{60}
	snap.Fib618 = []float64{75}
	return snap
}

func TestGenerateTargets_StrongBuy(t *testing.T) {
	for _, c := range []model.Category{model.CategoryStrongBuy, model.CategoryBuy} {
		tg := GenerateTargets(c, targetSnapshot())
		assert.Equal(t, model.BranchStrongBuy, tg.Branch)
		assert.InDelta(t, 97.0, tg.EntryLow, 1e-9)
		assert.InDelta(t, 103.0, tg.EntryHigh, 1e-9)
		require.Len(t, tg.Targets, 4)
		assert.InDelta(t, 115.0, tg.Targets[0].Price, 1e-9)
		assert.InDelta(t, 200.0, tg.Targets[3].Price, 1e-9)
		assert.InDelta(t, 100.0, tg.Targets[3].ChangePct, 1e-9)
		// max(92, 88, 76)
		assert.InDelta(t, 92.0, tg.StopLoss, 1e-9)
	}
}

func TestGenerateTargets_WeakBuy(t *testing.T) {
	snap := targetSnapshot()
	snap.BBLower = []float64{85}
	tg := GenerateTargets(model.CategoryNeutralBuy, snap)
	assert.Equal(t, model.BranchBuy, tg.Branch)
	require.Len(t, tg.Targets, 3)
	assert.InDelta(t, 135.0, tg.Targets[2].Price, 1e-9)
	// max(85, 90, 77.6)
	assert.InDelta(t, 90.0, tg.StopLoss, 1e-9)
}

func TestGenerateTargets_StopIgnoresUndefinedLevels(t *testing.T) {
	snap := pointSnapshot(100)
	tg := GenerateTargets(model.CategoryWeakBuy, snap)
	assert.InDelta(t, 90.0, tg.StopLoss, 1e-9)
}

func TestGenerateTargets_StrongSell(t *testing.T) {
	snap := targetSnapshot()
	tg := GenerateTargets(model.CategoryStrongSell, snap)
	assert.Equal(t, model.BranchStrongSell, tg.Branch)
	require.NotNil(t, tg.Peak)
	peak := tg.Peak.Price

	require.Len(t, tg.Exits, 4)
	assert.InDelta(t, 100.0, tg.Exits[0].Price, 1e-9)
	assert.InDelta(t, peak*0.85, tg.Exits[1].Price, 1e-9)
	assert.InDelta(t, peak*0.95, tg.Exits[2].Price, 1e-9)
	assert.InDelta(t, peak, tg.Exits[3].Price, 1e-9)
	fractions := 0.0
	for _, e := range tg.Exits {
		fractions += e.Fraction
	}
	assert.InDelta(t, 1.0, fractions, 1e-9)

	require.Len(t, tg.Supports, 3)
	assert.InDelta(t, 92.0, tg.Supports[0].Price, 1e-9)
	assert.InDelta(t, 80.0, tg.Supports[1].Price, 1e-9)
	assert.InDelta(t, 70.0, tg.Supports[2].Price, 1e-9)
	// min(75, 70)
	assert.InDelta(t, 70.0, tg.ReentryPrice, 1e-9)

	snap.Fib618 = []float64{65}
	assert.InDelta(t, 65.0, GenerateTargets(model.CategorySell, snap).ReentryPrice, 1e-9)
}

func TestGenerateTargets_WeakSell(t *testing.T) {
	for _, c := range []model.Category{model.CategoryWeakSell, model.CategoryNeutralSell} {
		tg := GenerateTargets(c, targetSnapshot())
		assert.Equal(t, model.BranchWeakSell, tg.Branch)
		require.NotNil(t, tg.Peak)
		require.Len(t, tg.Exits, 4)
		assert.InDelta(t, tg.Peak.Price*0.90, tg.Exits[0].Price, 1e-9)
		assert.InDelta(t, tg.Peak.Price*1.03, tg.Exits[3].Price, 1e-9)
		require.Len(t, tg.Supports, 3)
		assert.InDelta(t, 92.0, tg.Supports[0].Price, 1e-9)
		assert.InDelta(t, 78.0, tg.Supports[2].Price, 1e-9)
		assert.Zero(t, tg.ReentryPrice)
	}
}

func TestGenerateTargets_Neutral(t *testing.T) {
	tg := GenerateTargets(model.CategoryNeutral, targetSnapshot())
	assert.Equal(t, model.BranchNeutralRange, tg.Branch)
	assert.Empty(t, tg.Targets)
	assert.Empty(t, tg.Exits)
	assert.Nil(t, tg.Peak)
	assert.Equal(t, 92.0, tg.RangeLow)
	assert.Equal(t, 110.0, tg.RangeHigh)
	assert.Equal(t, 110.0, tg.BreakoutLevel)
	assert.Equal(t, 92.0, tg.BreakdownLevel)
	assert.Equal(t, 80.0, tg.KeySupport)
}

func TestMaxMinDefined(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 3.0, maxDefined(nan, 1, 3, nan))
	assert.Equal(t, 1.0, minDefined(nan, 1, 3))
	assert.True(t, math.IsNaN(maxDefined(nan, nan)))
}
