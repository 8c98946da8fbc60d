package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"CycleSentinel/internal/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// binanceMaxLimit is the largest kline page the API serves.
const binanceMaxLimit = 1000

// BinanceFetcher implements Fetcher using the Binance spot klines endpoint.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
	limiter *rate.Limiter
	tracer  trace.Tracer
}

// NewBinanceFetcher creates a fetcher with optional proxy support. ratePerSec
// bounds outgoing requests.
func NewBinanceFetcher(baseURL, proxyURL string, ratePerSec float64, tracer trace.Tracer) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if tracer == nil {
		tracer = otel.Tracer("collector")
	}
	if ratePerSec <= 0 {
		ratePerSec = 5
	}
	return &BinanceFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), 1),
		tracer:  tracer,
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// FetchDailyBars returns the latest `count` daily klines, paging backwards
// when count exceeds one page.
func (f *BinanceFetcher) FetchDailyBars(ctx context.Context, symbol string, count int) ([]model.OHLCV, error) {
	ctx, span := f.tracer.Start(ctx, "binance.fetch-daily-bars")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol), attribute.Int("count", count))

	var bars []model.OHLCV
	var endTime int64
	for len(bars) < count {
		limit := count - len(bars)
		if limit > binanceMaxLimit {
			limit = binanceMaxLimit
		}
		page, err := f.fetchPage(ctx, symbol, limit, endTime)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		bars = append(page, bars...)
		endTime = page[0].Time.UnixMilli() - 1
		if len(page) < limit {
			break
		}
	}
	return bars, nil
}

func (f *BinanceFetcher) fetchPage(ctx context.Context, symbol string, limit int, endTime int64) ([]model.OHLCV, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("binance rate limit: %w", err)
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1d")
	q.Set("limit", strconv.Itoa(limit))
	if endTime > 0 {
		q.Set("endTime", strconv.FormatInt(endTime, 10))
	}
	endpoint := f.BaseURL + "/api/v3/klines?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}
	return parseKlines(body)
}

// parseKlines decodes rows of [openTime, open, high, low, close, volume, ...]
// where prices and volume are decimal strings.
func parseKlines(body []byte) ([]model.OHLCV, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}
	bars := make([]model.OHLCV, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("binance: kline %d has %d fields", i, len(row))
		}
		var openTime int64
		if err := json.Unmarshal(row[0], &openTime); err != nil {
			return nil, fmt.Errorf("binance: kline %d open time: %w", i, err)
		}
		var vals [5]float64
		for j := range vals {
			var s string
			if err := json.Unmarshal(row[j+1], &s); err != nil {
				return nil, fmt.Errorf("binance: kline %d field %d: %w", i, j+1, err)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("binance: kline %d field %d: %w", i, j+1, err)
			}
			vals[j] = v
		}
		bars = append(bars, model.OHLCV{
			Time:   time.UnixMilli(openTime).UTC(),
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return bars, nil
}
