package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AlphaVantage fetches quotes from the Alpha Vantage HTTP API:
// GLOBAL_QUOTE for equities and CURRENCY_EXCHANGE_RATE (to USD) for crypto.
type AlphaVantage struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

func NewAlphaVantage(baseURL, apiKey string, timeout time.Duration, log *logrus.Logger) *AlphaVantage {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AlphaVantage{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (a *AlphaVantage) FetchQuote(ctx context.Context, symbol string, class AssetClass) (QuoteRecord, error) {
	params := url.Values{}
	params.Set("apikey", a.apiKey)
	switch class {
	case Equity:
		params.Set("function", "GLOBAL_QUOTE")
		params.Set("symbol", symbol)
	case Crypto:
		params.Set("function", "CURRENCY_EXCHANGE_RATE")
		params.Set("from_currency", symbol)
		params.Set("to_currency", "USD")
	default:
		return QuoteRecord{}, fmt.Errorf("unknown asset class %q", class)
	}

	a.log.Debugf("fetching %s quote for %s", class, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return QuoteRecord{}, fmt.Errorf("build quote request: %w", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return QuoteRecord{}, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return QuoteRecord{}, fmt.Errorf("fetch quote for %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return QuoteRecord{}, fmt.Errorf("decode quote response: %w", err)
	}
	// The API signals throttling with a 200 and a Note/Information field.
	if _, ok := body["Note"]; ok {
		return QuoteRecord{}, ErrRateLimited
	}
	if _, ok := body["Information"]; ok {
		return QuoteRecord{}, ErrRateLimited
	}

	switch class {
	case Equity:
		return parseGlobalQuote(symbol, body)
	default:
		return parseExchangeRate(symbol, body)
	}
}

func parseGlobalQuote(symbol string, body map[string]json.RawMessage) (QuoteRecord, error) {
	raw, ok := body["Global Quote"]
	if !ok {
		return QuoteRecord{}, ErrNoData
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return QuoteRecord{}, fmt.Errorf("decode global quote: %w", err)
	}
	if len(fields) == 0 {
		return QuoteRecord{}, ErrNoData
	}

	q := QuoteRecord{Symbol: symbol, Class: Equity}
	if s := field(fields, "symbol"); s != "" {
		q.Symbol = s
	}
	var err error
	if q.Price, err = parseDecimalField(fields, "price"); err != nil {
		return QuoteRecord{}, err
	}
	q.Open, _ = parseDecimalField(fields, "open")
	q.High, _ = parseDecimalField(fields, "high")
	q.Low, _ = parseDecimalField(fields, "low")
	q.ChangeAbs, _ = parseDecimalField(fields, "change")
	q.ChangePct, _ = parseDecimalField(fields, "change percent")
	q.Volume, _ = parseDecimalField(fields, "volume")
	q.AsOf = field(fields, "latest trading day")
	return q, nil
}

func parseExchangeRate(symbol string, body map[string]json.RawMessage) (QuoteRecord, error) {
	raw, ok := body["Realtime Currency Exchange Rate"]
	if !ok {
		return QuoteRecord{}, ErrNoData
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err != nil {
		return QuoteRecord{}, fmt.Errorf("decode exchange rate: %w", err)
	}
	if len(fields) == 0 {
		return QuoteRecord{}, ErrNoData
	}

	q := QuoteRecord{Symbol: symbol, Class: Crypto}
	if s := field(fields, "From_Currency Code"); s != "" {
		q.Symbol = s
	}
	q.Name = field(fields, "From_Currency Name")
	var err error
	if q.Price, err = parseDecimalField(fields, "Exchange Rate"); err != nil {
		return QuoteRecord{}, err
	}
	// The exchange-rate endpoint carries no daily range; mirror the price.
	q.Open, q.High, q.Low = q.Price, q.Price, q.Price
	q.AsOf = field(fields, "Last Refreshed")
	return q, nil
}

// field finds a value whose key either equals name or ends with ". "+name,
// tolerating the API's numbered keys ("05. price") and their bare form.
func field(fields map[string]string, name string) string {
	for k, v := range fields {
		if strings.EqualFold(k, name) || strings.HasSuffix(strings.ToLower(k), ". "+strings.ToLower(name)) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func parseDecimalField(fields map[string]string, name string) (decimal.Decimal, error) {
	s := field(fields, name)
	if s == "" || s == "N/A" {
		return decimal.Zero, fmt.Errorf("%w: missing field %q", ErrNoData, name)
	}
	return ParseDecimal(s)
}

// ParseDecimal parses an upstream numeric string, tolerating comma grouping
// and a trailing percent sign.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse number %q: %w", s, err)
	}
	return d, nil
}
