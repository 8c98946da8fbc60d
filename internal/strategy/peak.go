package strategy

import (
	"fmt"

	"CycleSentinel/internal/calculator"
	"CycleSentinel/internal/model"
)

const (
	peakComponentCap = 20.0
	peakBonusCap     = 10.0
)

// PeakInputs are the readings the peak proximity score is built from.
type PeakInputs struct {
	Price         float64
	High52w       float64
	RSI           float64
	RSIOver70Days int // bars with RSI > 70 in the last 30
	MA200         float64
	BBOver80Days  int // bars with band position > 80 in the last 30
	VolumeRatio   float64
	FearGreed     float64
}

// MA200Deviation returns the percentage distance of price above MA200.
func (in PeakInputs) MA200Deviation() float64 {
	if in.MA200 <= 0 {
		return 0
	}
	return (in.Price - in.MA200) / in.MA200 * 100
}

// PeakInputsFromSnapshot gathers peak inputs from the latest bar and the
// 30-day and 52-week trailing windows.
func PeakInputsFromSnapshot(snap *model.IndicatorSnapshot) PeakInputs {
	high52, _, err := calculator.Calculate52WeekRange(snap.Bars)
	if err != nil {
		high52 = snap.LastClose()
	}
	return PeakInputs{
		Price:         snap.LastClose(),
		High52w:       high52,
		RSI:           calculator.Last(snap.RSI),
		RSIOver70Days: calculator.CountAbove(snap.RSI, calculator.Window30Day, 70),
		MA200:         calculator.Last(snap.SMA200),
		BBOver80Days:  calculator.CountAbove(snap.BBPosition, calculator.Window30Day, 80),
		VolumeRatio:   calculator.VolumeRatio(snap.Bars, calculator.Window30Day),
		FearGreed:     calculator.Last(snap.FearGreed),
	}
}

var (
	highProximityBands = []Band[float64]{{Above(95), 20}, {Above(90), 15}, {Above(85), 10}}
	ma200DevBands      = []Band[float64]{{Above(100), 20}, {Above(70), 15}, {Above(50), 10}}
	bbDaysBands        = []Band[float64]{{Above(20), 20}, {Above(15), 15}, {Above(10), 10}}
	volumeBands        = []Band[float64]{{Above(3), 20}, {Above(2), 15}, {Above(1.5), 10}}
	fearGreedBonus     = []Band[float64]{{AtLeast(85), 10}, {AtLeast(75), 5}}
)

type peakStatus struct {
	status string
	advice string
}

var peakStatusBands = []Band[peakStatus]{
	{AtLeast(80), peakStatus{"extreme overheat", "sell 80-100% of holdings"}},
	{AtLeast(60), peakStatus{"severe overheat", "sell 50-70% of holdings"}},
	{AtLeast(40), peakStatus{"overheat", "sell 30-50% of holdings"}},
	{AtLeast(20), peakStatus{"caution", "trim 10-20% of holdings"}},
	{Always, peakStatus{"normal", "hold"}},
}

// AnalyzePeak computes the 0-100 peak proximity score.
func AnalyzePeak(in PeakInputs) model.PeakInfo {
	var comps []model.PeakComponent
	add := func(name string, points, limit float64, detail string) {
		if points > limit {
			points = limit
		}
		comps = append(comps, model.PeakComponent{Name: name, Points: points, Detail: detail})
	}

	highPct := 0.0
	if in.High52w > 0 {
		highPct = in.Price / in.High52w * 100
	}
	add("52-week high", Lookup(highPct, highProximityBands, 0), peakComponentCap,
		fmt.Sprintf("price at %.1f%% of 52-week high", highPct))

	rsiPoints := 0.0
	switch {
	case in.RSI > 80:
		rsiPoints = 20
	case in.RSI > 70:
		rsiPoints = 15
		if in.RSIOver70Days >= 15 {
			rsiPoints += 5
		}
	}
	add("RSI overheat", rsiPoints, peakComponentCap,
		fmt.Sprintf("RSI %.1f, %d of last 30 days above 70", in.RSI, in.RSIOver70Days))

	dev := in.MA200Deviation()
	add("MA200 deviation", Lookup(dev, ma200DevBands, 0), peakComponentCap,
		fmt.Sprintf("%+.1f%% from MA200", dev))

	add("Bollinger upper band", Lookup(float64(in.BBOver80Days), bbDaysBands, 0), peakComponentCap,
		fmt.Sprintf("%d of last 30 days above 80%% band position", in.BBOver80Days))

	add("volume surge", Lookup(in.VolumeRatio, volumeBands, 0), peakComponentCap,
		fmt.Sprintf("volume %.2fx the 30-day average", in.VolumeRatio))

	add("Fear & Greed bonus", Lookup(in.FearGreed, fearGreedBonus, 0), peakBonusCap,
		fmt.Sprintf("index %.1f", in.FearGreed))

	total := 0.0
	for _, c := range comps {
		total += c.Points
	}
	total = calculator.Clamp(total, 0, 100)

	st := Lookup(total, peakStatusBands, peakStatus{})
	return model.PeakInfo{
		Score:              total,
		Status:             st.status,
		SellRecommendation: st.advice,
		Components:         comps,
	}
}
