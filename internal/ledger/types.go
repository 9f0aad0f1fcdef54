package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide maps a request string onto a Side.
func ParseSide(s string) (Side, bool) {
	switch Side(s) {
	case Buy:
		return Buy, true
	case Sell:
		return Sell, true
	}
	return "", false
}

// TradeRequest carries everything ExecuteTrade needs to validate and apply
// a single buy or sell. FeeRate is a fraction in [0,1) applied to the gross
// total of a buy.
type TradeRequest struct {
	Side      Side
	Symbol    string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	FeeRate   decimal.Decimal
	Timestamp time.Time
}

// Holding is the current position in one symbol. ReferencePrice is the unit
// price of the most recent trade that touched the position.
type Holding struct {
	Symbol         string          `json:"symbol"`
	Quantity       decimal.Decimal `json:"quantity"`
	ReferencePrice decimal.Decimal `json:"reference_price"`
}

// Value returns quantity times reference price.
func (h Holding) Value() decimal.Decimal {
	return h.Quantity.Mul(h.ReferencePrice)
}

// Transaction is one committed trade. Total is the gross amount
// (quantity times unit price), before any fee. Immutable once appended.
type Transaction struct {
	ID        int64           `json:"id"`
	Side      Side            `json:"side"`
	Symbol    string          `json:"symbol"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// Snapshot is a read-only copy of the ledger for rendering. Holdings keep
// their insertion order; Transactions are newest-first.
type Snapshot struct {
	CashBalance    decimal.Decimal `json:"cash_balance"`
	Holdings       []Holding       `json:"holdings"`
	Transactions   []Transaction   `json:"transactions"`
	HoldingsValue  decimal.Decimal `json:"holdings_value"`
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
}
