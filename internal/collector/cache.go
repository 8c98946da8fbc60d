package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"CycleSentinel/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// CachedFetcher memoizes daily bars in Redis per provider, symbol, count and
// UTC day. Redis failures fall through to the wrapped fetcher.
type CachedFetcher struct {
	next   Fetcher
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Entry
	now    func() time.Time
}

func NewCachedFetcher(next Fetcher, client *redis.Client, ttl time.Duration, log *logrus.Entry) *CachedFetcher {
	return &CachedFetcher{next: next, client: client, ttl: ttl, log: log, now: time.Now}
}

func (c *CachedFetcher) Name() string { return c.next.Name() }

func (c *CachedFetcher) key(symbol string, count int) string {
	return fmt.Sprintf("bars:%s:%s:%d:%s", c.next.Name(), symbol, count, c.now().UTC().Format("2006-01-02"))
}

func (c *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, count int) ([]model.OHLCV, error) {
	key := c.key(symbol, count)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var bars []model.OHLCV
		if uerr := json.Unmarshal(raw, &bars); uerr == nil && len(bars) > 0 {
			c.log.WithField("key", key).Debug("bars served from cache")
			return bars, nil
		}
		c.log.WithField("key", key).Warn("discarding unreadable cache entry")
	case errors.Is(err, redis.Nil):
	default:
		c.log.WithError(err).Warn("redis get failed, bypassing cache")
	}

	bars, err := c.next.FetchDailyBars(ctx, symbol, count)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return bars, nil
	}
	payload, err := json.Marshal(bars)
	if err != nil {
		return bars, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("redis set failed")
	}
	return bars, nil
}
