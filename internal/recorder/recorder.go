package recorder

import (
	"context"
	"time"

	"CycleSentinel/internal/model"
)

// RunSummary is one row of analysis history.
type RunSummary struct {
	ID          string         `json:"id"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
	AsOf        time.Time      `json:"as_of"`
	Symbol      string         `json:"symbol"`
	Price       float64        `json:"price"`
	Category    model.Category `json:"category"`
	BaseScore   float64        `json:"base_score"`
	TotalScore  float64        `json:"total_score"`
	PeakScore   float64        `json:"peak_score"`
	CyclePhase  string         `json:"cycle_phase,omitempty"`
	Degraded    bool           `json:"degraded"`
}

// Recorder persists analysis history.
type Recorder interface {
	// RecordAnalysis stores a result and returns the generated run id.
	RecordAnalysis(ctx context.Context, res *model.AnalysisResult) (string, error)
	// RecentRuns returns up to limit runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]RunSummary, error)
	Close() error
}

// level is a flattened price level row.
type level struct {
	Kind     string
	Label    string
	Price    float64
	Fraction float64
}

// flattenTargets turns the branch-specific target layout into rows.
func flattenTargets(t model.PriceTargets) []level {
	var out []level
	add := func(kind, label string, price, fraction float64) {
		if price > 0 {
			out = append(out, level{Kind: kind, Label: label, Price: price, Fraction: fraction})
		}
	}

	add("entry", "entry_low", t.EntryLow, 0)
	add("entry", "entry_high", t.EntryHigh, 0)
	for _, l := range t.Targets {
		add("target", l.Label, l.Price, l.Fraction)
	}
	add("stop", "stop_loss", t.StopLoss, 0)
	for _, l := range t.Exits {
		add("exit", l.Label, l.Price, l.Fraction)
	}
	for _, l := range t.Supports {
		add("support", l.Label, l.Price, l.Fraction)
	}
	add("reentry", "reentry", t.ReentryPrice, 0)
	if t.Peak != nil {
		add("peak", "predicted_peak", t.Peak.Price, 0)
	}
	add("range", "range_low", t.RangeLow, 0)
	add("range", "range_high", t.RangeHigh, 0)
	add("range", "breakout", t.BreakoutLevel, 0)
	add("range", "breakdown", t.BreakdownLevel, 0)
	add("range", "key_support", t.KeySupport, 0)
	return out
}
