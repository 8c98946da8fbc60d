package strategy

import (
	"testing"

	"CycleSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyWeights(t *testing.T) {
	signals := []model.IndicatorSignal{
		{Name: NameRSI, Score: 2},
		{Name: NameIchimoku, Score: -2},
		{Name: NameATR, Score: 0.5},
	}
	weighted, base := ApplyWeights(signals)
	require.Len(t, weighted, 3)
	assert.Equal(t, 0.8, weighted[0].Weight)
	assert.InDelta(t, 1.6, weighted[0].Weighted, 1e-9)
	assert.InDelta(t, -3.0, weighted[1].Weighted, 1e-9)
	assert.InDelta(t, 0.25, weighted[2].Weighted, 1e-9)
	assert.InDelta(t, -1.15, base, 1e-9)
	assert.Equal(t, 0.0, signals[0].Weight, "input is not mutated")
}

func TestWeights_CoverEveryIndicator(t *testing.T) {
	total := 0.0
	for _, s := range ScoreAll(pointSnapshot(100)) {
		w, ok := weights[s.Name]
		assert.True(t, ok, s.Name)
		total += w
	}
	assert.InDelta(t, 11.0, total, 1e-9)
}

func TestApplyWeights_UnknownIndicatorHasNoWeight(t *testing.T) {
	weighted, base := ApplyWeights([]model.IndicatorSignal{{Name: "Volume Profile", Score: 2}})
	require.Len(t, weighted, 1)
	assert.Equal(t, 0.0, weighted[0].Weight)
	assert.Equal(t, 0.0, base)
}

func TestDecideCategory_TotalScoreBands(t *testing.T) {
	tests := []struct {
		total float64
		want  model.Category
	}{
		{12, model.CategoryStrongBuy},
		{10, model.CategoryStrongBuy},
		{9.99, model.CategoryBuy},
		{6, model.CategoryBuy},
		{3, model.CategoryWeakBuy},
		{1, model.CategoryNeutralBuy},
		{0.99, model.CategoryNeutral},
		{-1, model.CategoryNeutral},
		{-1.01, model.CategoryNeutralSell},
		{-3, model.CategoryNeutralSell},
		{-6, model.CategoryWeakSell},
		{-10, model.CategorySell},
		{-10.01, model.CategoryStrongSell},
	}
	for _, tt := range tests {
		d := DecideCategory(tt.total, nil, model.PeakInfo{})
		assert.Equal(t, tt.want, d.Category, "total %v", tt.total)
		assert.False(t, d.Overridden)
		assert.NotEmpty(t, d.Recommendation)
		assert.NotEmpty(t, d.Action)
	}
}

func TestDecideCategory_Adjustments(t *testing.T) {
	cycle := &model.CycleInfo{PhaseScore: -1.5}
	d := DecideCategory(4, cycle, model.PeakInfo{Score: 30})
	assert.InDelta(t, 4-0.75-3, d.TotalScore, 1e-9)
	assert.Equal(t, model.CategoryNeutral, d.Category)
	assert.Equal(t, 4.0, d.BaseScore)
}

func TestDecideCategory_PeakOverride(t *testing.T) {
	// Peak 85 with a bullish total still forces STRONG_SELL.
	d := DecideCategory(20.5, nil, model.PeakInfo{Score: 85})
	assert.InDelta(t, 12.0, d.TotalScore, 1e-9)
	assert.Equal(t, model.CategoryStrongSell, d.Category)
	assert.True(t, d.Overridden)

	d = DecideCategory(20, nil, model.PeakInfo{Score: 60})
	assert.Equal(t, model.CategorySell, d.Category)

	d = DecideCategory(20, nil, model.PeakInfo{Score: 80})
	assert.Equal(t, model.CategoryStrongSell, d.Category)
}

func TestDecideCategory_WeakSellWording(t *testing.T) {
	positive := DecideCategory(10, nil, model.PeakInfo{Score: 45})
	negative := DecideCategory(2, nil, model.PeakInfo{Score: 45})
	assert.Equal(t, model.CategoryWeakSell, positive.Category)
	assert.Equal(t, model.CategoryWeakSell, negative.Category)
	assert.Greater(t, positive.TotalScore, 0.0)
	assert.LessOrEqual(t, negative.TotalScore, 0.0)
	assert.NotEqual(t, positive.Recommendation, negative.Recommendation)
	assert.Contains(t, positive.Recommendation, "still positive")
}

func TestDecideCategory_JustBelowOverride(t *testing.T) {
	// Peak 39 no longer overrides; the penalty alone applies.
	d := DecideCategory(14.9, nil, model.PeakInfo{Score: 39})
	assert.InDelta(t, 11.0, d.TotalScore, 1e-9)
	assert.Equal(t, model.CategoryStrongBuy, d.Category)
	assert.False(t, d.Overridden)
}
