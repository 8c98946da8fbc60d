package calculator

import "math"

// Retracement ratios measured down from the window high.
const (
	Fib236 = 0.236
	Fib382 = 0.382
	Fib500 = 0.5
	Fib618 = 0.618
)

// FibonacciLevels holds retracement levels from the trailing window high/low.
type FibonacciLevels struct {
	L236 []float64
	L382 []float64
	L500 []float64
	L618 []float64
}

// FibonacciSeries computes level = high - (high-low)*ratio over a trailing
// `period`-bar window.
func FibonacciSeries(highs, lows []float64, period int) FibonacciLevels {
	n := len(highs)
	fib := FibonacciLevels{L236: nanSeries(n), L382: nanSeries(n), L500: nanSeries(n), L618: nanSeries(n)}
	hh := rollingMax(highs, period)
	ll := rollingMin(lows, period)
	for i := 0; i < n; i++ {
		if math.IsNaN(hh[i]) || math.IsNaN(ll[i]) {
			continue
		}
		diff := hh[i] - ll[i]
		fib.L236[i] = hh[i] - diff*Fib236
		fib.L382[i] = hh[i] - diff*Fib382
		fib.L500[i] = hh[i] - diff*Fib500
		fib.L618[i] = hh[i] - diff*Fib618
	}
	return fib
}
