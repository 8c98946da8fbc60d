package collector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"CycleSentinel/internal/model"

	"github.com/sirupsen/logrus"
)

// Collector fetches and cleans the daily series for one symbol.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Count   int
	log     *logrus.Entry
	now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, count int, log *logrus.Entry) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Count: count, log: log, now: time.Now}
}

// Collect fetches daily bars, drops invalid or duplicate bars, sorts them
// oldest first and trims to the configured count.
func (c *Collector) Collect(ctx context.Context) (*model.PriceSeries, error) {
	raw, err := c.Fetcher.FetchDailyBars(ctx, c.Symbol, c.Count)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	bars := CleanBars(raw)
	if dropped := len(raw) - len(bars); dropped > 0 {
		c.log.WithField("dropped", dropped).Warn("discarded invalid or duplicate bars")
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("collect %s: %w", c.Symbol, model.ErrEmptyInput)
	}
	if c.Count > 0 && len(bars) > c.Count {
		bars = bars[len(bars)-c.Count:]
	}

	c.log.WithFields(logrus.Fields{
		"provider": c.Fetcher.Name(),
		"bars":     len(bars),
		"last":     bars[len(bars)-1].Time.Format("2006-01-02"),
	}).Info("collected daily bars")

	return &model.PriceSeries{
		Symbol:    c.Symbol,
		Source:    c.Fetcher.Name(),
		Bars:      bars,
		FetchedAt: c.now().UTC(),
	}, nil
}

// CleanBars returns bars with a positive finite close, sorted by time. When
// two bars share a timestamp the later one wins.
func CleanBars(raw []model.OHLCV) []model.OHLCV {
	valid := make([]model.OHLCV, 0, len(raw))
	for _, b := range raw {
		if b.Close <= 0 || math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			continue
		}
		valid = append(valid, b)
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Time.Before(valid[j].Time) })

	out := valid[:0]
	for _, b := range valid {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}
