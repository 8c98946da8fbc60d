package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"CycleSentinel/internal/logging"
	"CycleSentinel/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"), logging.Component(logging.Discard(), "recorder"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func sampleResult(at time.Time, category model.Category, price float64) *model.AnalysisResult {
	return &model.AnalysisResult{
		Symbol:      "BTCUSDT",
		Price:       price,
		AsOf:        at.Truncate(24 * time.Hour),
		EvaluatedAt: at,
		Category:    category,
		BaseScore:   2.5,
		TotalScore:  3.0,
		Signals: []model.IndicatorSignal{
			{Name: "RSI", Value: "28.10", Label: "oversold", Score: 2, Weight: 1.5, Weighted: 3},
			{Name: "MACD", Value: "12.00", Label: "bullish", Score: 1, Weight: 1.2, Weighted: 1.2},
		},
		Targets: model.PriceTargets{
			Branch:    model.BranchBuy,
			EntryLow:  price * 0.97,
			EntryHigh: price,
			Targets: []model.PriceLevel{
				{Label: "T1", Price: price * 1.05},
				{Label: "T2", Price: price * 1.10},
			},
			StopLoss: price * 0.92,
		},
		Cycle:    &model.CycleInfo{Phase: "bull run", PositionPct: 40},
		Peak:     model.PeakInfo{Score: 35, Status: "normal"},
		Warnings: []string{"a", "b"},
	}
}

func TestRecordAnalysis(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 0, 5, 0, 0, time.UTC)

	id, err := r.RecordAnalysis(ctx, sampleResult(at, model.CategoryBuy, 84123.456))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	var signals, levels int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM indicator_signals WHERE run_id = ?`, id).Scan(&signals))
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM price_levels WHERE run_id = ?`, id).Scan(&levels))
	assert.Equal(t, 2, signals)
	assert.Equal(t, 5, levels)

	var price, warnings string
	require.NoError(t, r.db.QueryRow(`SELECT price, warnings FROM analysis_runs WHERE id = ?`, id).Scan(&price, &warnings))
	assert.Equal(t, "84123.46", price)
	assert.Equal(t, "a\nb", warnings)
}

func TestRecentRuns(t *testing.T) {
	r := newTestRecorder(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 0, 5, 0, 0, time.UTC)

	for i, cat := range []model.Category{model.CategoryBuy, model.CategoryNeutral, model.CategorySell} {
		_, err := r.RecordAnalysis(ctx, sampleResult(base.AddDate(0, 0, i), cat, 1000+float64(i)))
		require.NoError(t, err)
	}

	runs, err := r.RecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, model.CategorySell, runs[0].Category)
	assert.Equal(t, model.CategoryNeutral, runs[1].Category)
	assert.InDelta(t, 1002, runs[0].Price, 1e-9)
	assert.Equal(t, base.AddDate(0, 0, 2), runs[0].EvaluatedAt)
	assert.Equal(t, "bull run", runs[0].CyclePhase)
	assert.InDelta(t, 35, runs[0].PeakScore, 1e-9)

	all, err := r.RecentRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRecordWithoutCycle(t *testing.T) {
	r := newTestRecorder(t)
	res := sampleResult(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), model.CategoryNeutral, 500)
	res.Cycle = nil
	res.Degraded = true

	_, err := r.RecordAnalysis(context.Background(), res)
	require.NoError(t, err)

	runs, err := r.RecentRuns(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Degraded)
	assert.Empty(t, runs[0].CyclePhase)
}

func TestFlattenTargets(t *testing.T) {
	levels := flattenTargets(model.PriceTargets{
		Branch:    model.BranchStrongSell,
		Exits:     []model.PriceLevel{{Label: "now", Price: 100, Fraction: 0.3}},
		Supports:  []model.PriceLevel{{Label: "S1", Price: 90}},
		Peak:      &model.PeakPrediction{Price: 150},
		RangeHigh: 0,
	})
	require.Len(t, levels, 3)
	assert.Equal(t, "exit", levels[0].Kind)
	assert.InDelta(t, 0.3, levels[0].Fraction, 1e-9)
	assert.Equal(t, "peak", levels[2].Kind)
}

func TestNoopRecorder(t *testing.T) {
	n := NewNoopRecorder()
	id, err := n.RecordAnalysis(context.Background(), &model.AnalysisResult{})
	assert.NoError(t, err)
	assert.Empty(t, id)
	runs, err := n.RecentRuns(context.Background(), 5)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, n.Close())
}
