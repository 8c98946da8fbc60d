package calculator

import (
	"math"

	"CycleSentinel/internal/model"
)

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func extractHighs(bars []model.OHLCV) []float64 {
	highs := make([]float64, len(bars))
	for i, b := range bars {
		highs[i] = b.High
	}
	return highs
}

func extractLows(bars []model.OHLCV) []float64 {
	lows := make([]float64, len(bars))
	for i, b := range bars {
		lows[i] = b.Low
	}
	return lows
}

func extractVolumes(bars []model.OHLCV) []float64 {
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		volumes[i] = b.Volume
	}
	return volumes
}

// nanSeries returns a slice of n NaN values.
func nanSeries(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// alignRight places values at the end of an n-length NaN series.
// Indicator libraries emit only the defined tail of a series.
func alignRight(values []float64, n int) []float64 {
	out := nanSeries(n)
	if len(values) > n {
		values = values[len(values)-n:]
	}
	copy(out[n-len(values):], values)
	return out
}

// firstValid returns the index of the first non-NaN value, or len(s).
func firstValid(s []float64) int {
	for i, v := range s {
		if !math.IsNaN(v) {
			return i
		}
	}
	return len(s)
}

// rollingMean is a simple moving average that is NaN until the window is full
// of defined values.
func rollingMean(s []float64, period int) []float64 {
	out := nanSeries(len(s))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(s); i++ {
		sum := 0.0
		ok := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(s[j]) {
				ok = false
				break
			}
			sum += s[j]
		}
		if ok {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// rollingStd is the population standard deviation over a trailing window.
func rollingStd(s []float64, period int) []float64 {
	out := nanSeries(len(s))
	mean := rollingMean(s, period)
	for i := period - 1; i < len(s); i++ {
		if math.IsNaN(mean[i]) {
			continue
		}
		sq := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := s[j] - mean[i]
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(period))
	}
	return out
}

func rollingMax(s []float64, period int) []float64 {
	out := nanSeries(len(s))
	for i := period - 1; i < len(s); i++ {
		m := math.Inf(-1)
		for j := i - period + 1; j <= i; j++ {
			if s[j] > m {
				m = s[j]
			}
		}
		out[i] = m
	}
	return out
}

func rollingMin(s []float64, period int) []float64 {
	out := nanSeries(len(s))
	for i := period - 1; i < len(s); i++ {
		m := math.Inf(1)
		for j := i - period + 1; j <= i; j++ {
			if s[j] < m {
				m = s[j]
			}
		}
		out[i] = m
	}
	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Last returns the final value of a series, or NaN when it is empty.
func Last(s []float64) float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return s[len(s)-1]
}

// Prev returns the value before the final one, or NaN.
func Prev(s []float64) float64 {
	if len(s) < 2 {
		return math.NaN()
	}
	return s[len(s)-2]
}
