package strategy

import (
	"fmt"
	"math"
	"time"

	"CycleSentinel/internal/calculator"
	"CycleSentinel/internal/model"
)

// Engine turns a daily bar series into an AnalysisResult. It keeps no state
// between runs; the evaluation time is supplied by the caller.
type Engine struct {
	cycle *CycleAnalyzer
}

// NewEngine creates an engine using the given halving schedule.
func NewEngine(halvings HalvingSchedule) *Engine {
	if len(halvings) == 0 {
		halvings = DefaultHalvings
	}
	return &Engine{cycle: NewCycleAnalyzer(halvings)}
}

// Analyze runs the full pipeline over ordered daily bars at time `now`.
// It returns model.ErrEmptyInput when bars is empty. Short histories still
// produce a result, flagged as degraded.
func (e *Engine) Analyze(bars []model.OHLCV, now time.Time) (*model.AnalysisResult, error) {
	if len(bars) == 0 {
		return nil, model.ErrEmptyInput
	}

	snap := calculator.Compute(bars)
	signals, base := ApplyWeights(ScoreAll(snap))
	cycle := e.cycle.Analyze(now)
	peak := AnalyzePeak(PeakInputsFromSnapshot(snap))
	decision := DecideCategory(base, cycle, peak)
	targets := GenerateTargets(decision.Category, snap)

	last := bars[len(bars)-1]
	res := &model.AnalysisResult{
		Price:          last.Close,
		AsOf:           last.Time,
		EvaluatedAt:    now,
		Category:       decision.Category,
		BaseScore:      decision.BaseScore,
		TotalScore:     decision.TotalScore,
		Recommendation: decision.Recommendation,
		Action:         decision.Action,
		Signals:        signals,
		Targets:        targets,
		Cycle:          cycle,
		Peak:           peak,
	}

	if len(bars) < calculator.LongestWindow {
		res.Degraded = true
		res.Warnings = append(res.Warnings, fmt.Errorf("%w: %d bars, %d needed",
			model.ErrInsufficientData, len(bars), calculator.LongestWindow).Error())
	}
	for _, s := range signals {
		if s.Label == noDataLabel {
			res.Degraded = true
			res.Warnings = append(res.Warnings, s.Name+": not enough history, scored neutral")
		}
	}
	if cycle == nil {
		res.Warnings = append(res.Warnings, "no halving on or before evaluation date, cycle adjustment skipped")
	}

	sanitize(res)
	return res, nil
}

// sanitize replaces undefined levels with zero so results serialize cleanly.
func sanitize(res *model.AnalysisResult) {
	t := &res.Targets
	for _, p := range []*float64{
		&t.EntryLow, &t.EntryHigh, &t.StopLoss, &t.ReentryPrice,
		&t.RangeLow, &t.RangeHigh, &t.BreakoutLevel, &t.BreakdownLevel, &t.KeySupport,
	} {
		*p = finite(*p)
	}
	for _, levels := range [][]model.PriceLevel{t.Targets, t.Exits, t.Supports} {
		for i := range levels {
			levels[i].Price = finite(levels[i].Price)
			levels[i].ChangePct = finite(levels[i].ChangePct)
		}
	}
	if t.Peak != nil {
		t.Peak.Price = finite(t.Peak.Price)
		t.Peak.UpsidePct = finite(t.Peak.UpsidePct)
		for i := range t.Peak.Projections {
			t.Peak.Projections[i].Price = finite(t.Peak.Projections[i].Price)
		}
	}
	for i := range res.Peak.Components {
		res.Peak.Components[i].Points = finite(res.Peak.Components[i].Points)
	}
	res.BaseScore = finite(res.BaseScore)
	res.TotalScore = finite(res.TotalScore)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
