package quotes

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// AssetClass selects which upstream endpoint serves a symbol.
type AssetClass string

const (
	Crypto AssetClass = "crypto"
	Equity AssetClass = "equity"
)

// ParseAssetClass accepts the wire spellings used by the dashboard routes.
func ParseAssetClass(s string) (AssetClass, bool) {
	switch s {
	case "crypto":
		return Crypto, true
	case "equity", "stocks":
		return Equity, true
	}
	return "", false
}

var (
	// ErrRateLimited means the upstream answered with a rate-limit or
	// informational notice instead of data.
	ErrRateLimited = errors.New("quote provider rate limited")
	// ErrNoData means the upstream had nothing for the symbol.
	ErrNoData = errors.New("no data for symbol")
)

// QuoteRecord is the fixed-shape quote handed to the rest of the system.
// The provider's loosely-keyed payloads are parsed into this at the fetch
// boundary and never travel further. Zero decimals mean the upstream did
// not report the figure.
type QuoteRecord struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name,omitempty"`
	Class     AssetClass      `json:"class"`
	Price     decimal.Decimal `json:"price"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	ChangeAbs decimal.Decimal `json:"change_abs"`
	ChangePct decimal.Decimal `json:"change_pct"`
	Volume    decimal.Decimal `json:"volume"`
	MarketCap decimal.Decimal `json:"market_cap"`
	AsOf      string          `json:"as_of"`
}

// Provider fetches the current quote for a symbol.
type Provider interface {
	FetchQuote(ctx context.Context, symbol string, class AssetClass) (QuoteRecord, error)
}
