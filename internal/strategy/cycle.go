package strategy

import (
	"sort"
	"time"

	"CycleSentinel/internal/model"
)

// cycleLengthDays is the nominal halving cycle length.
const cycleLengthDays = 365.25 * 4

// HalvingSchedule is the ordered table of known and estimated halving dates.
type HalvingSchedule []time.Time

// DefaultHalvings lists past halvings and the estimated future ones.
var DefaultHalvings = HalvingSchedule{
	time.Date(2012, 11, 28, 0, 0, 0, 0, time.UTC),
	time.Date(2016, 7, 9, 0, 0, 0, 0, time.UTC),
	time.Date(2020, 5, 11, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
	time.Date(2028, 4, 17, 0, 0, 0, 0, time.UTC), // estimated
	time.Date(2032, 4, 1, 0, 0, 0, 0, time.UTC),  // estimated
}

// Sorted returns a chronologically ordered copy.
func (h HalvingSchedule) Sorted() HalvingSchedule {
	out := make(HalvingSchedule, len(h))
	copy(out, h)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

type phase struct {
	label string
	score float64
}

var cyclePhases = []Band[phase]{
	{Below(15), phase{"accumulation (post-halving)", 2}},
	{Below(40), phase{"early bull market", 1.5}},
	{Below(60), phase{"mid bull market", 0.5}},
	{Below(75), phase{"late bull market (overheating)", -0.5}},
	{Below(90), phase{"near cycle top", -1.5}},
	{Always, phase{"late cycle / bear market", -2}},
}

// CycleAnalyzer places a date inside the halving cycle.
type CycleAnalyzer struct {
	halvings HalvingSchedule
}

// NewCycleAnalyzer creates an analyzer over the given schedule.
func NewCycleAnalyzer(halvings HalvingSchedule) *CycleAnalyzer {
	return &CycleAnalyzer{halvings: halvings.Sorted()}
}

// Analyze returns the cycle position at `now`, or nil when no halving is on
// or before that date.
func (c *CycleAnalyzer) Analyze(now time.Time) *model.CycleInfo {
	idx := -1
	for i, h := range c.halvings {
		if !h.After(now) {
			idx = i
		}
	}
	if idx < 0 {
		return nil
	}

	last := c.halvings[idx]
	days := int(now.Sub(last).Hours() / 24)
	pct := float64(days) / cycleLengthDays * 100
	ph := Lookup(pct, cyclePhases, phase{})

	info := &model.CycleInfo{
		LastHalving:      last,
		DaysSinceHalving: days,
		PositionPct:      pct,
		Phase:            ph.label,
		PhaseScore:       ph.score,
	}
	if idx+1 < len(c.halvings) {
		next := c.halvings[idx+1]
		info.NextHalving = &next
	}
	return info
}
