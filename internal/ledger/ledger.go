package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Validation failures returned by ExecuteTrade. A failed call leaves the
// ledger untouched.
var (
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInvalidPrice         = errors.New("unit price must be greater than zero")
	ErrInvalidFeeRate       = errors.New("fee rate must be in [0,1)")
	ErrInsufficientFunds    = errors.New("insufficient balance to complete this trade")
	ErrInsufficientHoldings = errors.New("insufficient holdings to complete this trade")
)

var one = decimal.NewFromInt(1)

// Ledger owns a cash balance, the open holdings, and an append-only
// transaction log. All mutation goes through ExecuteTrade, which is a
// critical section: concurrent callers serialize on the internal mutex so
// the balance, holdings, and log are never observed mid-transition.
type Ledger struct {
	mu       sync.Mutex
	cash     decimal.Decimal
	holdings map[string]*Holding
	order    []string // holding insertion order, for stable rendering
	log      []Transaction
	nextID   int64
	logger   *logrus.Logger
}

// SeedHolding is an initial position handed to New.
type SeedHolding struct {
	Symbol         string
	Quantity       decimal.Decimal
	ReferencePrice decimal.Decimal
}

// New creates a ledger with the given opening cash balance and optional seed
// positions. Seed entries with a non-positive quantity or price are skipped.
func New(seedCash decimal.Decimal, seeds []SeedHolding, logger *logrus.Logger) *Ledger {
	if logger == nil {
		logger = logrus.New()
	}
	l := &Ledger{
		cash:     seedCash,
		holdings: map[string]*Holding{},
		nextID:   1,
		logger:   logger,
	}
	if l.cash.IsNegative() {
		logger.Warnf("negative seed cash %s clamped to zero", l.cash)
		l.cash = decimal.Zero
	}
	for _, s := range seeds {
		if !s.Quantity.IsPositive() || !s.ReferencePrice.IsPositive() {
			logger.Warnf("skipping seed holding %s: non-positive quantity or price", s.Symbol)
			continue
		}
		if _, ok := l.holdings[s.Symbol]; ok {
			continue
		}
		l.holdings[s.Symbol] = &Holding{Symbol: s.Symbol, Quantity: s.Quantity, ReferencePrice: s.ReferencePrice}
		l.order = append(l.order, s.Symbol)
	}
	return l
}

// ExecuteTrade validates req and, on success, atomically applies it and
// appends a transaction. Preconditions are checked in a fixed order and the
// first failure wins; a rejected request performs no mutation at all.
//
// A buy pays gross plus gross*FeeRate out of cash; a sell credits the gross
// amount only (no fee on the sell side). Re-buying an existing position
// bumps the quantity and overwrites the reference price with this trade's
// unit price. Selling a position down to exactly zero removes it.
func (l *Ledger) ExecuteTrade(req TradeRequest) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !req.Quantity.IsPositive() {
		return Transaction{}, ErrInvalidQuantity
	}
	if !req.UnitPrice.IsPositive() {
		return Transaction{}, ErrInvalidPrice
	}
	if req.FeeRate.IsNegative() || req.FeeRate.GreaterThanOrEqual(one) {
		return Transaction{}, ErrInvalidFeeRate
	}

	gross := req.Quantity.Mul(req.UnitPrice)

	switch req.Side {
	case Buy:
		totalWithFee := gross.Mul(one.Add(req.FeeRate))
		if l.cash.LessThan(totalWithFee) {
			return Transaction{}, ErrInsufficientFunds
		}
		l.cash = l.cash.Sub(totalWithFee)
		if h, ok := l.holdings[req.Symbol]; ok {
			h.Quantity = h.Quantity.Add(req.Quantity)
			h.ReferencePrice = req.UnitPrice
		} else {
			l.holdings[req.Symbol] = &Holding{
				Symbol:         req.Symbol,
				Quantity:       req.Quantity,
				ReferencePrice: req.UnitPrice,
			}
			l.order = append(l.order, req.Symbol)
		}
	case Sell:
		h, ok := l.holdings[req.Symbol]
		if !ok || h.Quantity.LessThan(req.Quantity) {
			return Transaction{}, ErrInsufficientHoldings
		}
		l.cash = l.cash.Add(gross)
		h.Quantity = h.Quantity.Sub(req.Quantity)
		if h.Quantity.IsZero() {
			l.removeHolding(req.Symbol)
		}
	default:
		return Transaction{}, errors.New("unknown trade side")
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	tx := Transaction{
		ID:        l.nextID,
		Side:      req.Side,
		Symbol:    req.Symbol,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Total:     gross,
		Timestamp: ts,
	}
	l.nextID++
	l.log = append(l.log, tx)

	l.logger.Debugf("trade committed: %s %s %s @ %s", tx.Side, tx.Quantity, tx.Symbol, tx.UnitPrice)
	return tx, nil
}

func (l *Ledger) removeHolding(symbol string) {
	delete(l.holdings, symbol)
	for i, s := range l.order {
		if s == symbol {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}

// CashBalance returns the current cash balance.
func (l *Ledger) CashBalance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

// HoldingsValue sums quantity times reference price over all holdings.
func (l *Ledger) HoldingsValue() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.holdingsValueLocked()
}

// PortfolioValue is cash plus HoldingsValue.
func (l *Ledger) PortfolioValue() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash.Add(l.holdingsValueLocked())
}

func (l *Ledger) holdingsValueLocked() decimal.Decimal {
	total := decimal.Zero
	for _, h := range l.holdings {
		total = total.Add(h.Value())
	}
	return total
}

// Snapshot copies the ledger state for rendering. Holdings come back in
// insertion order and transactions newest-first.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	holdings := make([]Holding, 0, len(l.order))
	for _, sym := range l.order {
		holdings = append(holdings, *l.holdings[sym])
	}
	txs := make([]Transaction, len(l.log))
	for i, tx := range l.log {
		txs[len(l.log)-1-i] = tx
	}
	hv := l.holdingsValueLocked()
	return Snapshot{
		CashBalance:    l.cash,
		Holdings:       holdings,
		Transactions:   txs,
		HoldingsValue:  hv,
		PortfolioValue: l.cash.Add(hv),
	}
}
