package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds the bars fetched for one analysis run.
type PriceSeries struct {
	Symbol    string
	Source    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Last returns the most recent bar. The series must not be empty.
func (p *PriceSeries) Last() OHLCV {
	return p.Bars[len(p.Bars)-1]
}
