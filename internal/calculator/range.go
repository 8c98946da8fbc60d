package calculator

import (
	"errors"
	"math"

	"CycleSentinel/internal/model"
)

// Trailing windows, in daily bars. Crypto trades every day of the year.
const (
	Window52Week = 365
	Window30Day  = 30
)

// Calculate52WeekRange scans the most recent 365 daily bars and returns the high and low.
func Calculate52WeekRange(dailyBars []model.OHLCV) (high, low float64, err error) {
	return trailingRange(dailyBars, Window52Week)
}

// Calculate30DayRange scans the most recent 30 daily bars and returns the high and low.
func Calculate30DayRange(dailyBars []model.OHLCV) (high, low float64, err error) {
	return trailingRange(dailyBars, Window30Day)
}

func trailingRange(dailyBars []model.OHLCV, window int) (high, low float64, err error) {
	if len(dailyBars) == 0 {
		return 0, 0, errors.New("no daily bars provided")
	}
	n := len(dailyBars)
	start := n - window
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if dailyBars[i].High > high {
			high = dailyBars[i].High
		}
		if dailyBars[i].Low < low {
			low = dailyBars[i].Low
		}
	}
	return high, low, nil
}

// CountAbove counts the defined values above threshold among the last `window` entries.
func CountAbove(s []float64, window int, threshold float64) int {
	start := len(s) - window
	if start < 0 {
		start = 0
	}
	count := 0
	for _, v := range s[start:] {
		if !math.IsNaN(v) && v > threshold {
			count++
		}
	}
	return count
}

// VolumeRatio returns the latest volume divided by the mean of the last `window` volumes.
func VolumeRatio(dailyBars []model.OHLCV, window int) float64 {
	n := len(dailyBars)
	if n == 0 {
		return math.NaN()
	}
	start := n - window
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for _, b := range dailyBars[start:] {
		sum += b.Volume
	}
	mean := sum / float64(n-start)
	if mean == 0 {
		return math.NaN()
	}
	return dailyBars[n-1].Volume / mean
}
