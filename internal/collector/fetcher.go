package collector

import (
	"context"

	"CycleSentinel/internal/model"
)

// Fetcher retrieves daily OHLCV bars from a market-data source.
type Fetcher interface {
	// FetchDailyBars returns up to count daily bars, oldest first.
	FetchDailyBars(ctx context.Context, symbol string, count int) ([]model.OHLCV, error)
	Name() string
}
