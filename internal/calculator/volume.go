package calculator

import (
	"fmt"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"
	"github.com/cinar/indicator/v2/volatility"
	"github.com/markcheno/go-talib"
)

// atrPeriod matches the default period of the ATR indicator.
const atrPeriod = 14

// wilderMa adapts cinar's RMA to the trend.Ma interface, which RMA lacks a
// String method for.
type wilderMa struct {
	*trend.Rma[float64]
}

func (w wilderMa) String() string { return fmt.Sprintf("RMA(%d)", w.Period) }

// ATRSeries computes the 14-period average true range with Wilder smoothing.
// The first value is the mean of the first 14 true ranges.
func ATRSeries(highs, lows, closes []float64) []float64 {
	n := len(closes)
	if n <= atrPeriod {
		return nanSeries(n)
	}
	atr := volatility.NewAtrWithMa[float64](wilderMa{trend.NewRmaWithPeriod[float64](atrPeriod)})
	out := helper.ChanToSlice(atr.Compute(
		helper.SliceToChan(highs),
		helper.SliceToChan(lows),
		helper.SliceToChan(closes),
	))
	return alignRight(out, n)
}

// OBVSeries computes on-balance volume, starting from the first bar's volume.
// Each later bar adds its volume on a higher close, subtracts it on a lower
// close and carries the total on an unchanged close.
func OBVSeries(closes, volumes []float64) []float64 {
	if len(closes) == 0 {
		return nil
	}
	return talib.Obv(closes, volumes)
}
