package strategy

import (
	"fmt"
	"math"

	"CycleSentinel/internal/calculator"
	"CycleSentinel/internal/model"
)

var (
	strongBuyTargets = []float64{1.15, 1.30, 1.50, 2.00}
	buyTargets       = []float64{1.10, 1.20, 1.35}
	weakSellLadder   = []float64{0.90, 0.95, 1.00, 1.03}
	weakSellSupports = []float64{0.92, 0.85, 0.78}
)

// GenerateTargets builds price targets or an exit ladder for the category.
func GenerateTargets(category model.Category, snap *model.IndicatorSnapshot) model.PriceTargets {
	price := snap.LastClose()
	lower := calculator.Last(snap.BBLower)
	upper := calculator.Last(snap.BBUpper)
	ma200 := calculator.Last(snap.SMA200)

	switch category {
	case model.CategoryStrongBuy, model.CategoryBuy:
		return buySide(model.BranchStrongBuy, price, strongBuyTargets,
			maxDefined(lower, price*0.88, ma200*0.95))
	case model.CategoryWeakBuy, model.CategoryNeutralBuy:
		return buySide(model.BranchBuy, price, buyTargets,
			maxDefined(lower, price*0.90, ma200*0.97))
	case model.CategoryStrongSell, model.CategorySell:
		peak := PredictPeak(snap)
		t := model.PriceTargets{Branch: model.BranchStrongSell, Peak: &peak}
		t.Exits = []model.PriceLevel{
			level("sell now", price, price, 0.30),
			level("85% of predicted peak", peak.Price*0.85, price, 0.30),
			level("95% of predicted peak", peak.Price*0.95, price, 0.30),
			level("predicted peak", peak.Price, price, 0.10),
		}
		t.Supports = []model.PriceLevel{
			level("support 1", maxDefined(lower, price*0.88), price, 0),
			level("support 2", price*0.80, price, 0),
			level("support 3", price*0.70, price, 0),
		}
		t.ReentryPrice = minDefined(calculator.Last(snap.Fib618), price*0.70)
		return t
	case model.CategoryWeakSell, model.CategoryNeutralSell:
		peak := PredictPeak(snap)
		t := model.PriceTargets{Branch: model.BranchWeakSell, Peak: &peak}
		for i, f := range weakSellLadder {
			t.Exits = append(t.Exits, level(fmt.Sprintf("stage %d (%.0f%% of peak)", i+1, f*100), peak.Price*f, price, 0.25))
		}
		for i, f := range weakSellSupports {
			t.Supports = append(t.Supports, level(fmt.Sprintf("support %d", i+1), price*f, price, 0))
		}
		return t
	default:
		return model.PriceTargets{
			Branch:         model.BranchNeutralRange,
			RangeLow:       lower,
			RangeHigh:      upper,
			BreakoutLevel:  upper,
			BreakdownLevel: lower,
			KeySupport:     ma200,
		}
	}
}

func buySide(branch model.TargetBranch, price float64, multiples []float64, stop float64) model.PriceTargets {
	t := model.PriceTargets{
		Branch:    branch,
		EntryLow:  price * 0.97,
		EntryHigh: price * 1.03,
		StopLoss:  stop,
	}
	for i, m := range multiples {
		t.Targets = append(t.Targets, level(fmt.Sprintf("target %d", i+1), price*m, price, 0))
	}
	return t
}

func level(label string, p, ref, fraction float64) model.PriceLevel {
	change := 0.0
	if ref > 0 {
		change = (p - ref) / ref * 100
	}
	return model.PriceLevel{Label: label, Price: p, ChangePct: change, Fraction: fraction}
}

// maxDefined returns the largest non-NaN value, or NaN when none is defined.
func maxDefined(vs ...float64) float64 {
	out := math.NaN()
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v > out {
			out = v
		}
	}
	return out
}

// minDefined returns the smallest non-NaN value, or NaN when none is defined.
func minDefined(vs ...float64) float64 {
	out := math.NaN()
	for _, v := range vs {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(out) || v < out {
			out = v
		}
	}
	return out
}
