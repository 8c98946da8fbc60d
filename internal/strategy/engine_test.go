package strategy

import (
	"encoding/json"
	"errors"
	"testing"

	"CycleSentinel/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_EmptyInput(t *testing.T) {
	res, err := NewEngine(nil).Analyze(nil, date(2025, 1, 1))
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, model.ErrEmptyInput))
}

func TestAnalyze_FlatMarketIsNeutral(t *testing.T) {
	bars := flatSeries(300, 100)
	// One old symmetric wick keeps the 52-week high away from price
	// without adding directional movement.
	bars[100].High = 190
	bars[100].Low = 10

	engine := NewEngine(HalvingSchedule{date(2030, 1, 1)})
	now := date(2025, 1, 1)
	res, err := engine.Analyze(bars, now)
	require.NoError(t, err)

	assert.Nil(t, res.Cycle)
	assert.Equal(t, 0.0, res.Peak.Score)
	assert.Equal(t, "normal", res.Peak.Status)
	assert.Equal(t, model.CategoryNeutral, res.Category)
	assert.GreaterOrEqual(t, res.TotalScore, -1.0)
	assert.LessOrEqual(t, res.TotalScore, 1.0)
	assert.InDelta(t, 0.85, res.TotalScore, 1e-6)

	assert.Equal(t, model.BranchNeutralRange, res.Targets.Branch)
	assert.InDelta(t, 100.0, res.Targets.BreakoutLevel, 1e-9)
	assert.InDelta(t, 100.0, res.Targets.BreakdownLevel, 1e-9)
	assert.InDelta(t, 100.0, res.Targets.KeySupport, 1e-9)

	require.Len(t, res.Signals, 12)
	byName := map[string]model.IndicatorSignal{}
	for _, s := range res.Signals {
		byName[s.Name] = s
	}
	assert.Equal(t, "50.00", byName[NameRSI].Value)
	assert.Equal(t, 0.0, byName[NameMACD].Score)
	assert.Equal(t, 0.0, byName[NameSMA].Score)
	assert.Equal(t, 0.5, byName[NameATR].Score)
	assert.Equal(t, 1.0, byName[NameFibonacci].Score)

	assert.False(t, res.Degraded)
	assert.Equal(t, now, res.EvaluatedAt)
	assert.Equal(t, bars[299].Time, res.AsOf)
}

func TestAnalyze_OverheatedMarketIsStrongSell(t *testing.T) {
	bars := compoundingSeries(300, 100, 0.01)
	bars[299].Volume = 4000

	res, err := NewEngine(DefaultHalvings).Analyze(bars, date(2025, 6, 1))
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.Peak.Score)
	assert.Equal(t, "extreme overheat", res.Peak.Status)
	assert.Equal(t, model.CategoryStrongSell, res.Category)

	price := res.Price
	tg := res.Targets
	assert.Equal(t, model.BranchStrongSell, tg.Branch)
	require.NotNil(t, tg.Peak)
	assert.GreaterOrEqual(t, tg.Peak.Price, price*1.05-1e-6)
	assert.LessOrEqual(t, tg.Peak.Price, price*1.80+1e-6)
	require.Len(t, tg.Exits, 4)
	assert.LessOrEqual(t, tg.ReentryPrice, price*0.70+1e-6)
	assert.Greater(t, tg.ReentryPrice, 0.0)

	require.NotNil(t, res.Cycle)
	assert.Equal(t, date(2024, 4, 20), res.Cycle.LastHalving)
}

func TestAnalyze_ShortHistoryIsDegraded(t *testing.T) {
	bars := compoundingSeries(60, 100, -0.005)
	res, err := NewEngine(DefaultHalvings).Analyze(bars, date(2025, 6, 1))
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], model.ErrInsufficientData.Error())

	for _, s := range res.Signals {
		if s.Name == NameSMA || s.Name == NameEMA {
			assert.Equal(t, 0.0, s.Score)
			assert.Equal(t, noDataLabel, s.Label)
		}
	}

	_, err = json.Marshal(res)
	assert.NoError(t, err)
}

func TestAnalyze_SingleBar(t *testing.T) {
	res, err := NewEngine(DefaultHalvings).Analyze(flatSeries(1, 50), date(2025, 6, 1))
	require.NoError(t, err)
	assert.True(t, res.Degraded)
	assert.GreaterOrEqual(t, res.Peak.Score, 0.0)
	assert.LessOrEqual(t, res.Peak.Score, 100.0)
	_, err = json.Marshal(res)
	assert.NoError(t, err)
}

func TestAnalyze_Deterministic(t *testing.T) {
	bars := compoundingSeries(250, 100, 0.002)
	engine := NewEngine(DefaultHalvings)
	now := date(2025, 6, 1)
	a, err := engine.Analyze(bars, now)
	require.NoError(t, err)
	b, err := engine.Analyze(bars, now)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestAnalyze_SteadyRiseIsVolumeInflow(t *testing.T) {
	res, err := NewEngine(DefaultHalvings).Analyze(compoundingSeries(250, 100, 0.002), date(2025, 6, 1))
	require.NoError(t, err)

	for _, s := range res.Signals {
		if s.Name == NameOBV {
			assert.Equal(t, "strong inflow", s.Label)
			assert.Equal(t, 1.5, s.Score)
			assert.InDelta(t, 1.5, s.Weighted, 1e-9)
			return
		}
	}
	t.Fatal("OBV signal missing")
}
