package quotes

import "github.com/shopspring/decimal"

// Bundled demo quotes, substituted when the live fetch fails or is rate
// limited. Figures match the dashboard's demo data set.

func fd(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var fallbackCrypto = map[string]QuoteRecord{
	"BTC": {Symbol: "BTC", Name: "Bitcoin", Class: Crypto, Price: fd("42567.89"), Open: fd("42567.89"), High: fd("43245.00"), Low: fd("41890.50"), ChangeAbs: fd("2.45"), ChangePct: fd("2.45"), Volume: fd("28456000000"), MarketCap: fd("835467000000"), AsOf: "2025-11-15"},
	"ETH": {Symbol: "ETH", Name: "Ethereum", Class: Crypto, Price: fd("2145.67"), Open: fd("2145.67"), High: fd("2189.45"), Low: fd("2089.23"), ChangeAbs: fd("1.82"), ChangePct: fd("1.82"), Volume: fd("15234567890"), MarketCap: fd("257890000000"), AsOf: "2025-11-15"},
	"XRP": {Symbol: "XRP", Name: "XRP", Class: Crypto, Price: fd("2.45"), Open: fd("2.45"), High: fd("2.56"), Low: fd("2.34"), ChangeAbs: fd("3.12"), ChangePct: fd("3.12"), Volume: fd("4567890123"), MarketCap: fd("135678900000"), AsOf: "2025-11-15"},
	"ADA": {Symbol: "ADA", Name: "Cardano", Class: Crypto, Price: fd("0.98"), Open: fd("0.98"), High: fd("1.02"), Low: fd("0.95"), ChangeAbs: fd("2.67"), ChangePct: fd("2.67"), Volume: fd("2345678901"), MarketCap: fd("35678000000"), AsOf: "2025-11-15"},
	"SOL": {Symbol: "SOL", Name: "Solana", Class: Crypto, Price: fd("198.45"), Open: fd("198.45"), High: fd("205.67"), Low: fd("189.34"), ChangeAbs: fd("4.23"), ChangePct: fd("4.23"), Volume: fd("3456789012"), MarketCap: fd("89234567890"), AsOf: "2025-11-15"},
	"DOGE": {Symbol: "DOGE", Name: "Dogecoin", Class: Crypto, Price: fd("0.42"), Open: fd("0.42"), High: fd("0.44"), Low: fd("0.40"), ChangeAbs: fd("3.89"), ChangePct: fd("3.89"), Volume: fd("1234567890"), MarketCap: fd("61234567890"), AsOf: "2025-11-15"},
}

var fallbackEquity = map[string]QuoteRecord{
	"AAPL":  {Symbol: "AAPL", Class: Equity, Price: fd("236.54"), Open: fd("235.45"), High: fd("237.89"), Low: fd("234.21"), ChangeAbs: fd("1.42"), ChangePct: fd("0.60"), Volume: fd("42567890"), AsOf: "2025-11-15"},
	"MSFT":  {Symbol: "MSFT", Class: Equity, Price: fd("430.15"), Open: fd("428.70"), High: fd("431.20"), Low: fd("427.45"), ChangeAbs: fd("1.25"), ChangePct: fd("0.29"), Volume: fd("18234567"), AsOf: "2025-11-15"},
	"GOOGL": {Symbol: "GOOGL", Class: Equity, Price: fd("176.45"), Open: fd("175.30"), High: fd("177.89"), Low: fd("174.56"), ChangeAbs: fd("1.25"), ChangePct: fd("0.71"), Volume: fd("21345678"), AsOf: "2025-11-15"},
	"AMZN":  {Symbol: "AMZN", Class: Equity, Price: fd("195.67"), Open: fd("194.50"), High: fd("196.78"), Low: fd("193.20"), ChangeAbs: fd("2.22"), ChangePct: fd("1.15"), Volume: fd("38456789"), AsOf: "2025-11-15"},
	"TSLA":  {Symbol: "TSLA", Class: Equity, Price: fd("288.90"), Open: fd("287.45"), High: fd("290.12"), Low: fd("285.67"), ChangeAbs: fd("2.36"), ChangePct: fd("0.82"), Volume: fd("52341234"), AsOf: "2025-11-15"},
	"META":  {Symbol: "META", Class: Equity, Price: fd("570.56"), Open: fd("567.89"), High: fd("572.34"), Low: fd("565.12"), ChangeAbs: fd("1.66"), ChangePct: fd("0.29"), Volume: fd("15234567"), AsOf: "2025-11-15"},
}

// Fallback returns the bundled quote for a symbol, if one exists.
func Fallback(symbol string, class AssetClass) (QuoteRecord, bool) {
	var q QuoteRecord
	var ok bool
	switch class {
	case Crypto:
		q, ok = fallbackCrypto[symbol]
	case Equity:
		q, ok = fallbackEquity[symbol]
	}
	return q, ok
}

// FallbackSymbols lists the symbols with bundled data for a class, used in
// "no data" messages.
func FallbackSymbols(class AssetClass) []string {
	switch class {
	case Crypto:
		return []string{"BTC", "ETH", "XRP", "ADA", "SOL", "DOGE"}
	case Equity:
		return []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "META"}
	}
	return nil
}
