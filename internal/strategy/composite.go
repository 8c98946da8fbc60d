package strategy

import (
	"fmt"

	"CycleSentinel/internal/model"
)

// weights holds the fixed contribution of each indicator to the base score.
var weights = map[string]float64{
	NameRSI:       0.8,
	NameMACD:      1.0,
	NameSMA:       1.2,
	NameBollinger: 0.8,
	NameStoch:     0.6,
	NameEMA:       1.2,
	NameOBV:       1.0,
	NameADX:       0.8,
	NameIchimoku:  1.5,
	NameATR:       0.5,
	NameFearGreed: 1.0,
	NameFibonacci: 0.6,
}

const (
	cycleFactor   = 0.5
	peakDivisor   = 10.0
	overrideSS    = 80.0
	overrideSell  = 60.0
	overrideWeakS = 40.0
)

// Decision is the outcome of composite scoring.
type Decision struct {
	BaseScore      float64
	TotalScore     float64
	Category       model.Category
	Recommendation string
	Action         string
	Overridden     bool
}

type categoryText struct {
	category       model.Category
	recommendation string
	action         string
}

var totalScoreBands = []Band[categoryText]{
	{AtLeast(10), categoryText{model.CategoryStrongBuy,
		"Nearly every indicator and the cycle phase point up. Strong buy zone.",
		"Accumulate aggressively inside the entry zone; scale out at the targets."}},
	{AtLeast(6), categoryText{model.CategoryBuy,
		"Most indicators are bullish. Buy zone.",
		"Buy in tranches inside the entry zone and keep the stop-loss."}},
	{AtLeast(3), categoryText{model.CategoryWeakBuy,
		"Indicators lean bullish. Weak buy zone.",
		"Start a small position; add on confirmation."}},
	{AtLeast(1), categoryText{model.CategoryNeutralBuy,
		"Signals are mixed with a slight bullish tilt.",
		"Small dollar-cost-averaging buys only."}},
	{AtLeast(-1), categoryText{model.CategoryNeutral,
		"Signals are mixed or neutral.",
		"Hold and watch the breakout and breakdown levels."}},
	{AtLeast(-3), categoryText{model.CategoryNeutralSell,
		"Signals are mixed with a slight bearish tilt.",
		"Avoid new buys; consider trimming into strength."}},
	{AtLeast(-6), categoryText{model.CategoryWeakSell,
		"Indicators lean bearish. Weak sell zone.",
		"Take partial profits along the conservative exit ladder."}},
	{AtLeast(-10), categoryText{model.CategorySell,
		"Most indicators are bearish. Sell zone.",
		"Reduce exposure along the exit ladder."}},
	{Always, categoryText{model.CategoryStrongSell,
		"Nearly every indicator points down. Strong sell zone.",
		"Exit most of the position along the exit ladder and wait for the re-entry zone."}},
}

// ApplyWeights returns a copy of the signals with weights and weighted scores
// filled in, and their sum.
func ApplyWeights(signals []model.IndicatorSignal) ([]model.IndicatorSignal, float64) {
	out := make([]model.IndicatorSignal, len(signals))
	base := 0.0
	for i, s := range signals {
		s.Weight = weights[s.Name]
		s.Weighted = s.Score * s.Weight
		base += s.Weighted
		out[i] = s
	}
	return out, base
}

// DecideCategory combines the base score with the cycle and peak adjustments and
// applies the overheat override before bucketing the total score.
func DecideCategory(base float64, cycle *model.CycleInfo, peak model.PeakInfo) Decision {
	phaseScore := 0.0
	if cycle != nil {
		phaseScore = cycle.PhaseScore
	}
	total := base + phaseScore*cycleFactor - peak.Score/peakDivisor
	d := Decision{BaseScore: base, TotalScore: total}

	switch {
	case peak.Score >= overrideSS:
		d.Category = model.CategoryStrongSell
		d.Overridden = true
		d.Recommendation = fmt.Sprintf("Peak proximity %.0f/100: extreme overheat overrides every other signal.", peak.Score)
		d.Action = "Sell 80-100% of holdings in stages along the exit ladder."
	case peak.Score >= overrideSell:
		d.Category = model.CategorySell
		d.Overridden = true
		d.Recommendation = fmt.Sprintf("Peak proximity %.0f/100: severe overheat, the cycle top may be near.", peak.Score)
		d.Action = "Sell 50-70% of holdings in stages along the exit ladder."
	case peak.Score >= overrideWeakS:
		d.Category = model.CategoryWeakSell
		d.Overridden = true
		if total > 0 {
			d.Recommendation = fmt.Sprintf("Indicators are still positive, but peak proximity %.0f/100 signals overheating.", peak.Score)
			d.Action = "Take 30-50% profit into strength even though momentum is intact."
		} else {
			d.Recommendation = fmt.Sprintf("Peak proximity %.0f/100 and weakening indicators.", peak.Score)
			d.Action = "Take 30-50% profit along the conservative exit ladder."
		}
	default:
		ct := Lookup(total, totalScoreBands, totalScoreBands[len(totalScoreBands)-1].Result)
		d.Category = ct.category
		d.Recommendation = ct.recommendation
		d.Action = ct.action
	}
	return d
}
