package collector

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"CycleSentinel/internal/model"

	"github.com/sirupsen/logrus"
)

// FallbackFetcher tries each fetcher in order and returns the first
// non-empty result.
type FallbackFetcher struct {
	fetchers []Fetcher
	log      *logrus.Entry
}

func NewFallbackFetcher(log *logrus.Entry, fetchers ...Fetcher) *FallbackFetcher {
	return &FallbackFetcher{fetchers: fetchers, log: log}
}

func (f *FallbackFetcher) Name() string {
	names := make([]string, len(f.fetchers))
	for i, fe := range f.fetchers {
		names[i] = fe.Name()
	}
	return strings.Join(names, "+")
}

func (f *FallbackFetcher) FetchDailyBars(ctx context.Context, symbol string, count int) ([]model.OHLCV, error) {
	var errs []error
	for _, fe := range f.fetchers {
		bars, err := fe.FetchDailyBars(ctx, symbol, count)
		if err == nil && len(bars) > 0 {
			return bars, nil
		}
		if err == nil {
			err = model.ErrEmptyInput
		}
		f.log.WithError(err).WithField("provider", fe.Name()).Warn("provider failed, trying next")
		errs = append(errs, fmt.Errorf("%s: %w", fe.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, errors.New("no providers configured")
	}
	return nil, errors.Join(errs...)
}
