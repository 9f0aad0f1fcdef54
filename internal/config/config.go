// Package config loads service settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Defaults mirror the dashboard's built-in demo setup.
const (
	defaultPort     = "8080"
	defaultBaseURL  = "https://www.alphavantage.co/query"
	defaultAPIKey   = "LRY3NRQ0QJTP8GMK"
	defaultTimeout  = 10 * time.Second
	defaultSeedCash = "50000"
	defaultFeeRate  = "0.005"
)

// SeedHolding is an opening position for the ledger.
type SeedHolding struct {
	Symbol   string
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// Config is the validated, typed configuration handed to main.
type Config struct {
	Port         string
	QuoteBaseURL string
	QuoteAPIKey  string
	QuoteTimeout time.Duration
	SeedCash     decimal.Decimal
	FeeRate      decimal.Decimal
	SeedHoldings []SeedHolding
}

type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Quotes struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"quotes"`
	Ledger struct {
		SeedCash     string `yaml:"seed_cash"`
		FeeRate      string `yaml:"fee_rate"`
		SeedHoldings []struct {
			Symbol   string `yaml:"symbol"`
			Quantity string `yaml:"quantity"`
			Price    string `yaml:"price"`
		} `yaml:"seed_holdings"`
	} `yaml:"ledger"`
}

// Load reads config from a YAML file (missing file is fine), applies
// environment variable overrides, and validates the numeric fields.
func Load(path string) (*Config, error) {
	fc := &fileConfig{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		fc.Server.Port = v
	}
	if v := os.Getenv("QUOTES_BASE_URL"); v != "" {
		fc.Quotes.BaseURL = v
	}
	if v := os.Getenv("QUOTES_API_KEY"); v != "" {
		fc.Quotes.APIKey = v
	}
	if v := os.Getenv("QUOTES_TIMEOUT_SECONDS"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil && iv > 0 {
			fc.Quotes.TimeoutSeconds = iv
		}
	}
	if v := os.Getenv("LEDGER_SEED_CASH"); v != "" {
		fc.Ledger.SeedCash = v
	}
	if v := os.Getenv("LEDGER_FEE_RATE"); v != "" {
		fc.Ledger.FeeRate = v
	}

	return build(fc)
}

func build(fc *fileConfig) (*Config, error) {
	cfg := &Config{
		Port:         defaultPort,
		QuoteBaseURL: defaultBaseURL,
		QuoteAPIKey:  defaultAPIKey,
		QuoteTimeout: defaultTimeout,
	}
	if fc.Server.Port != "" {
		cfg.Port = fc.Server.Port
	}
	if fc.Quotes.BaseURL != "" {
		cfg.QuoteBaseURL = fc.Quotes.BaseURL
	}
	if fc.Quotes.APIKey != "" {
		cfg.QuoteAPIKey = fc.Quotes.APIKey
	}
	if fc.Quotes.TimeoutSeconds > 0 {
		cfg.QuoteTimeout = time.Duration(fc.Quotes.TimeoutSeconds) * time.Second
	}

	seedCash := fc.Ledger.SeedCash
	if seedCash == "" {
		seedCash = defaultSeedCash
	}
	var err error
	if cfg.SeedCash, err = decimal.NewFromString(seedCash); err != nil {
		return nil, fmt.Errorf("invalid seed cash %q: %w", seedCash, err)
	}
	if cfg.SeedCash.IsNegative() {
		return nil, fmt.Errorf("seed cash must not be negative, got %s", cfg.SeedCash)
	}

	feeRate := fc.Ledger.FeeRate
	if feeRate == "" {
		feeRate = defaultFeeRate
	}
	if cfg.FeeRate, err = decimal.NewFromString(feeRate); err != nil {
		return nil, fmt.Errorf("invalid fee rate %q: %w", feeRate, err)
	}
	if cfg.FeeRate.IsNegative() || cfg.FeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("fee rate must be in [0,1), got %s", cfg.FeeRate)
	}

	if len(fc.Ledger.SeedHoldings) == 0 {
		cfg.SeedHoldings = DefaultSeedHoldings()
	} else {
		for _, h := range fc.Ledger.SeedHoldings {
			q, err := decimal.NewFromString(h.Quantity)
			if err != nil {
				return nil, fmt.Errorf("seed holding %s: invalid quantity %q: %w", h.Symbol, h.Quantity, err)
			}
			p, err := decimal.NewFromString(h.Price)
			if err != nil {
				return nil, fmt.Errorf("seed holding %s: invalid price %q: %w", h.Symbol, h.Price, err)
			}
			cfg.SeedHoldings = append(cfg.SeedHoldings, SeedHolding{Symbol: h.Symbol, Quantity: q, Price: p})
		}
	}
	return cfg, nil
}

// DefaultSeedHoldings is the demo portfolio the dashboard starts with.
func DefaultSeedHoldings() []SeedHolding {
	mk := func(sym, qty, price string) SeedHolding {
		return SeedHolding{
			Symbol:   sym,
			Quantity: decimal.RequireFromString(qty),
			Price:    decimal.RequireFromString(price),
		}
	}
	return []SeedHolding{
		mk("BTC", "0.5", "42567.89"),
		mk("ETH", "2.5", "2145.67"),
		mk("XRP", "1000", "2.45"),
		mk("ADA", "5000", "1.05"),
		mk("SOL", "5", "349.50"),
		mk("DOGE", "15000", "0.42"),
	}
}
