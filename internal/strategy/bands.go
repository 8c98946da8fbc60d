package strategy

import "math"

// Band is one row of an ordered threshold table. Match reports whether the
// value falls in the band; the first matching row wins.
type Band[T any] struct {
	Match  func(v float64) bool
	Result T
}

// Above matches v > x.
func Above(x float64) func(float64) bool { return func(v float64) bool { return v > x } }

// AtLeast matches v >= x.
func AtLeast(x float64) func(float64) bool { return func(v float64) bool { return v >= x } }

// Below matches v < x.
func Below(x float64) func(float64) bool { return func(v float64) bool { return v < x } }

// Always matches every value and closes a table.
func Always(float64) bool { return true }

// Lookup evaluates bands top-down and returns the first match. NaN never
// matches and falls to the fallback, as does a value no band accepts.
func Lookup[T any](v float64, bands []Band[T], fallback T) T {
	if math.IsNaN(v) {
		return fallback
	}
	for _, b := range bands {
		if b.Match(v) {
			return b.Result
		}
	}
	return fallback
}

// Verdict is a scored label.
type Verdict struct {
	Label string
	Score float64
}

// Rule is a row of a multi-input decision table.
type Rule[In any] struct {
	When    func(In) bool
	Verdict Verdict
}

// Decide evaluates rules top-down and returns the first matching verdict.
func Decide[In any](in In, rules []Rule[In], fallback Verdict) Verdict {
	for _, r := range rules {
		if r.When(in) {
			return r.Verdict
		}
	}
	return fallback
}

// anyNaN reports whether any value is undefined.
func anyNaN(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
