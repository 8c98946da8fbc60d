package collector

import (
	"fmt"
	"strings"

	"CycleSentinel/internal/config"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// NewFromConfig builds the configured provider chain, wrapped in the Redis
// cache when a URL is set. The returned close function releases the cache
// client.
func NewFromConfig(cfg *config.Config, tracer trace.Tracer, log *logrus.Entry) (Fetcher, func() error, error) {
	ds := cfg.DataSource
	fetchers := make([]Fetcher, 0, len(ds.Providers))
	for _, p := range ds.Providers {
		switch strings.TrimSpace(p) {
		case "binance":
			fetchers = append(fetchers, NewBinanceFetcher(ds.BinanceURL, cfg.Proxy, ds.RatePerSec, tracer))
		case "yahoo":
			fetchers = append(fetchers, NewYahooFetcher(ds.YahooURL, cfg.Proxy, tracer))
		case "mock":
			fetchers = append(fetchers, &MockFetcher{Price: 60000})
		default:
			return nil, nil, fmt.Errorf("%w: unknown provider %q", config.ErrInvalidConfig, p)
		}
	}
	if len(fetchers) == 0 {
		return nil, nil, fmt.Errorf("%w: no data providers", config.ErrInvalidConfig)
	}

	var fetcher Fetcher = fetchers[0]
	if len(fetchers) > 1 {
		fetcher = NewFallbackFetcher(log, fetchers...)
	}

	noop := func() error { return nil }
	if cfg.Cache.RedisURL == "" {
		return fetcher, noop, nil
	}
	client, err := NewRedisClient(cfg.Cache.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("ttl", cfg.Cache.TTL).Info("redis bar cache enabled")
	return NewCachedFetcher(fetcher, client, cfg.Cache.TTL, log), client.Close, nil
}
