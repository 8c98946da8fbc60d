package calculator

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
)

// SMASeries returns the simple moving average series aligned to the input.
// Leading NaN values in the input are skipped before the window starts.
func SMASeries(values []float64, period int) []float64 {
	start := firstValid(values)
	tail := values[start:]
	if period <= 0 || len(tail) < period {
		return nanSeries(len(values))
	}
	sma := trend.NewSmaWithPeriod[float64](period)
	out := helper.ChanToSlice(sma.Compute(helper.SliceToChan(tail)))
	return alignRight(out, len(values))
}

// EMASeries returns the exponential moving average series aligned to the
// input, seeded with the SMA of the first window.
func EMASeries(values []float64, period int) []float64 {
	start := firstValid(values)
	tail := values[start:]
	if period <= 0 || len(tail) < period {
		return nanSeries(len(values))
	}
	ema := trend.NewEmaWithPeriod[float64](period)
	out := helper.ChanToSlice(ema.Compute(helper.SliceToChan(tail)))
	return alignRight(out, len(values))
}
