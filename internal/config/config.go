package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Providers  []string `yaml:"providers"`
		Symbol     string   `yaml:"symbol"`
		Bars       int      `yaml:"bars"`
		BinanceURL string   `yaml:"binance_url"`
		YahooURL   string   `yaml:"yahoo_url"`
		RatePerSec float64  `yaml:"rate_per_sec"`
	} `yaml:"data_source"`
	Cache struct {
		RedisURL string        `yaml:"redis_url"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Cycle struct {
		Halvings []string `yaml:"halvings"`
	} `yaml:"cycle"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Store struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"store"`
	Report struct {
		OutputPath string `yaml:"output_path"`
	} `yaml:"report"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Tracing struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"tracing"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("DATA_PROVIDERS"); v != "" {
		c.DataSource.Providers = strings.Split(v, ",")
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		c.DataSource.Symbol = v
	}
	if v := os.Getenv("BAR_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DataSource.Bars = n
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv("HALVING_DATES"); v != "" {
		c.Cycle.Halvings = strings.Split(v, ",")
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		c.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		c.Store.StateFile = v
	}
	if v := os.Getenv("REPORT_PATH"); v != "" {
		c.Report.OutputPath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		c.Tracing.Enabled = v == "true"
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
}

func (c *Config) applyDefaults() {
	if len(c.DataSource.Providers) == 0 {
		c.DataSource.Providers = []string{"binance", "yahoo"}
	}
	if c.DataSource.Symbol == "" {
		c.DataSource.Symbol = "BTCUSDT"
	}
	if c.DataSource.Bars == 0 {
		c.DataSource.Bars = 400
	}
	if c.DataSource.BinanceURL == "" {
		c.DataSource.BinanceURL = "https://api.binance.com"
	}
	if c.DataSource.YahooURL == "" {
		c.DataSource.YahooURL = "https://query1.finance.yahoo.com"
	}
	if c.DataSource.RatePerSec == 0 {
		c.DataSource.RatePerSec = 5
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Hour
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 5 0 * * *"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/cycle_sentinel.db"
	}
	if c.Store.StateFile == "" {
		c.Store.StateFile = "data/latest_analysis.json"
	}
	if c.Report.OutputPath == "" {
		c.Report.OutputPath = "data/index.html"
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// HalvingDates parses the configured halving dates (YYYY-MM-DD). An empty
// list means the built-in schedule.
func (c *Config) HalvingDates() ([]time.Time, error) {
	dates := make([]time.Time, 0, len(c.Cycle.Halvings))
	for _, s := range c.Cycle.Halvings {
		d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("%w: halving date %q: %v", ErrInvalidConfig, s, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

// Validate checks the settings the bot needs to run.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("%w: telegram.bot_token is required", ErrInvalidConfig)
	}
	if c.Telegram.ChatID == 0 {
		return fmt.Errorf("%w: telegram.chat_id is required", ErrInvalidConfig)
	}
	return c.ValidateData()
}

// ValidateData checks the settings needed to fetch and analyze data.
func (c *Config) ValidateData() error {
	if c.DataSource.Bars < 1 {
		return fmt.Errorf("%w: data_source.bars must be positive", ErrInvalidConfig)
	}
	for _, p := range c.DataSource.Providers {
		switch strings.TrimSpace(p) {
		case "binance", "yahoo", "mock":
		default:
			return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, p)
		}
	}
	if _, err := c.HalvingDates(); err != nil {
		return err
	}
	return nil
}
