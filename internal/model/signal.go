package model

import "time"

// Category is the final position category of an analysis run.
type Category string

const (
	CategoryStrongBuy   Category = "STRONG_BUY"
	CategoryBuy         Category = "BUY"
	CategoryWeakBuy     Category = "WEAK_BUY"
	CategoryNeutralBuy  Category = "NEUTRAL_BUY"
	CategoryNeutral     Category = "NEUTRAL"
	CategoryNeutralSell Category = "NEUTRAL_SELL"
	CategoryWeakSell    Category = "WEAK_SELL"
	CategorySell        Category = "SELL"
	CategoryStrongSell  Category = "STRONG_SELL"
)

// IsBuy reports whether the category is on the buy side.
func (c Category) IsBuy() bool {
	switch c {
	case CategoryStrongBuy, CategoryBuy, CategoryWeakBuy, CategoryNeutralBuy:
		return true
	}
	return false
}

// IsSell reports whether the category is on the sell side.
func (c Category) IsSell() bool {
	switch c {
	case CategoryStrongSell, CategorySell, CategoryWeakSell, CategoryNeutralSell:
		return true
	}
	return false
}

// IndicatorSignal is one indicator's scored reading on the latest bar.
type IndicatorSignal struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Label    string  `json:"label"`
	Detail   string  `json:"detail,omitempty"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// CycleInfo describes the position inside the halving-anchored cycle.
type CycleInfo struct {
	LastHalving      time.Time  `json:"last_halving"`
	NextHalving      *time.Time `json:"next_halving,omitempty"`
	DaysSinceHalving int        `json:"days_since_halving"`
	PositionPct      float64    `json:"position_pct"`
	Phase            string     `json:"phase"`
	PhaseScore       float64    `json:"phase_score"`
}

// PeakComponent is one contribution to the peak proximity score.
type PeakComponent struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	Detail string  `json:"detail"`
}

// PeakInfo is the 0-100 overheat assessment.
type PeakInfo struct {
	Score              float64         `json:"score"`
	Status             string          `json:"status"`
	SellRecommendation string          `json:"sell_recommendation"`
	Components         []PeakComponent `json:"components"`
}

// PeakProjection is one weighted input to the predicted peak price.
type PeakProjection struct {
	Method string  `json:"method"`
	Price  float64 `json:"price"`
	Weight float64 `json:"weight"`
}

// PeakPrediction is the estimated cycle-top price.
type PeakPrediction struct {
	Price       float64          `json:"price"`
	Confidence  string           `json:"confidence"`
	UpsidePct   float64          `json:"upside_pct"`
	Multiplier  float64          `json:"rsi_multiplier"`
	Projections []PeakProjection `json:"projections"`
}

// PriceLevel is a labelled price, optionally carrying a position fraction.
type PriceLevel struct {
	Label     string  `json:"label"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Fraction  float64 `json:"fraction,omitempty"`
}

// TargetBranch identifies which target layout was produced.
type TargetBranch string

const (
	BranchStrongBuy    TargetBranch = "strong_buy"
	BranchBuy          TargetBranch = "buy"
	BranchStrongSell   TargetBranch = "strong_sell"
	BranchWeakSell     TargetBranch = "weak_sell"
	BranchNeutralRange TargetBranch = "neutral"
)

// PriceTargets holds the entry/target/stop or exit ladder for a category.
type PriceTargets struct {
	Branch TargetBranch `json:"branch"`

	EntryLow  float64      `json:"entry_low,omitempty"`
	EntryHigh float64      `json:"entry_high,omitempty"`
	Targets   []PriceLevel `json:"targets,omitempty"`
	StopLoss  float64      `json:"stop_loss,omitempty"`

	Exits        []PriceLevel    `json:"exits,omitempty"`
	Supports     []PriceLevel    `json:"supports,omitempty"`
	ReentryPrice float64         `json:"reentry_price,omitempty"`
	Peak         *PeakPrediction `json:"peak,omitempty"`

	RangeLow       float64 `json:"range_low,omitempty"`
	RangeHigh      float64 `json:"range_high,omitempty"`
	BreakoutLevel  float64 `json:"breakout_level,omitempty"`
	BreakdownLevel float64 `json:"breakdown_level,omitempty"`
	KeySupport     float64 `json:"key_support,omitempty"`
}

// AnalysisResult is the terminal output of one engine run.
type AnalysisResult struct {
	Symbol         string            `json:"symbol"`
	Price          float64           `json:"price"`
	AsOf           time.Time         `json:"as_of"`
	EvaluatedAt    time.Time         `json:"evaluated_at"`
	Category       Category          `json:"category"`
	BaseScore      float64           `json:"base_score"`
	TotalScore     float64           `json:"total_score"`
	Recommendation string            `json:"recommendation"`
	Action         string            `json:"action"`
	Signals        []IndicatorSignal `json:"signals"`
	Targets        PriceTargets      `json:"targets"`
	Cycle          *CycleInfo        `json:"cycle,omitempty"`
	Peak           PeakInfo          `json:"peak"`
	Degraded       bool              `json:"degraded"`
	Warnings       []string          `json:"warnings,omitempty"`
}
