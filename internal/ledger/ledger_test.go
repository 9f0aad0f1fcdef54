package ledger

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func newTestLedger(cash string, seeds ...SeedHolding) *Ledger {
	return New(d(cash), seeds, quietLogger())
}

func TestBuyDebitsCashWithFeeAndCreatesHolding(t *testing.T) {
	l := newTestLedger("50000")

	tx, err := l.ExecuteTrade(TradeRequest{
		Side: Buy, Symbol: "BTC",
		Quantity: d("0.5"), UnitPrice: d("42567.89"), FeeRate: d("0.005"),
	})
	require.NoError(t, err)

	// gross = 21283.945, fee = 106.419725
	require.True(t, l.CashBalance().Equal(d("28609.635275")),
		"cash = %s", l.CashBalance())
	require.True(t, tx.Total.Equal(d("21283.945")), "total = %s", tx.Total)

	snap := l.Snapshot()
	require.Len(t, snap.Holdings, 1)
	assert.Equal(t, "BTC", snap.Holdings[0].Symbol)
	assert.True(t, snap.Holdings[0].Quantity.Equal(d("0.5")))
	assert.True(t, snap.Holdings[0].ReferencePrice.Equal(d("42567.89")))
	require.Len(t, snap.Transactions, 1)
}

func TestSellCreditsGrossWithoutFee(t *testing.T) {
	l := newTestLedger("1000", SeedHolding{Symbol: "ETH", Quantity: d("2"), ReferencePrice: d("100")})

	_, err := l.ExecuteTrade(TradeRequest{
		Side: Sell, Symbol: "ETH",
		Quantity: d("1"), UnitPrice: d("150"), FeeRate: d("0.01"),
	})
	require.NoError(t, err)
	assert.True(t, l.CashBalance().Equal(d("1150")), "cash = %s", l.CashBalance())
}

func TestBuySellRoundTripLeaksOnlyBuyFee(t *testing.T) {
	l := newTestLedger("50000")
	qty, price, fee := d("3"), d("250.10"), d("0.005")

	_, err := l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "SOL", Quantity: qty, UnitPrice: price, FeeRate: fee})
	require.NoError(t, err)
	_, err = l.ExecuteTrade(TradeRequest{Side: Sell, Symbol: "SOL", Quantity: qty, UnitPrice: price})
	require.NoError(t, err)

	leak := qty.Mul(price).Mul(fee)
	want := d("50000").Sub(leak)
	assert.True(t, l.CashBalance().Equal(want), "cash = %s, want %s", l.CashBalance(), want)
	assert.Empty(t, l.Snapshot().Holdings)
}

func TestValidationOrderFirstFailureWins(t *testing.T) {
	// Both quantity and price are bad; quantity is checked first.
	l := newTestLedger("100")
	_, err := l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "BTC", Quantity: d("-1"), UnitPrice: d("0")})
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRejectedTradesLeaveStateUntouched(t *testing.T) {
	l := newTestLedger("50000", SeedHolding{Symbol: "BTC", Quantity: d("0.5"), ReferencePrice: d("42567.89")})
	before := l.Snapshot()

	cases := []struct {
		name string
		req  TradeRequest
		want error
	}{
		{"negative quantity", TradeRequest{Side: Buy, Symbol: "ETH", Quantity: d("-1"), UnitPrice: d("2000")}, ErrInvalidQuantity},
		{"zero quantity", TradeRequest{Side: Buy, Symbol: "ETH", Quantity: decimal.Zero, UnitPrice: d("2000")}, ErrInvalidQuantity},
		{"zero price", TradeRequest{Side: Buy, Symbol: "ETH", Quantity: d("1"), UnitPrice: decimal.Zero}, ErrInvalidPrice},
		{"negative fee", TradeRequest{Side: Buy, Symbol: "ETH", Quantity: d("1"), UnitPrice: d("10"), FeeRate: d("-0.1")}, ErrInvalidFeeRate},
		{"fee of one", TradeRequest{Side: Buy, Symbol: "ETH", Quantity: d("1"), UnitPrice: d("10"), FeeRate: d("1")}, ErrInvalidFeeRate},
		{"buy beyond cash", TradeRequest{Side: Buy, Symbol: "BTC", Quantity: d("100"), UnitPrice: d("42567.89")}, ErrInsufficientFunds},
		{"sell beyond holding", TradeRequest{Side: Sell, Symbol: "BTC", Quantity: d("0.6"), UnitPrice: d("42567.89")}, ErrInsufficientHoldings},
		{"sell unknown symbol", TradeRequest{Side: Sell, Symbol: "XRP", Quantity: d("1"), UnitPrice: d("2.45")}, ErrInsufficientHoldings},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := l.ExecuteTrade(tc.req)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, before, l.Snapshot())
		})
	}
}

func TestLogGrowsByOnePerSuccessWithIncreasingIDs(t *testing.T) {
	l := newTestLedger("10000")
	for i := 0; i < 5; i++ {
		_, err := l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "ADA", Quantity: d("10"), UnitPrice: d("1.05")})
		require.NoError(t, err)
	}
	// a rejected call must not append
	_, err := l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "ADA", Quantity: d("-1"), UnitPrice: d("1.05")})
	require.Error(t, err)

	snap := l.Snapshot()
	require.Len(t, snap.Transactions, 5)
	// newest-first rendering, ids strictly increasing by creation
	for i := 0; i < len(snap.Transactions)-1; i++ {
		assert.Greater(t, snap.Transactions[i].ID, snap.Transactions[i+1].ID)
	}
	assert.Equal(t, int64(5), snap.Transactions[0].ID)
}

func TestSellingFullQuantityRemovesHolding(t *testing.T) {
	l := newTestLedger("0", SeedHolding{Symbol: "DOGE", Quantity: d("15000"), ReferencePrice: d("0.42")})

	_, err := l.ExecuteTrade(TradeRequest{Side: Sell, Symbol: "DOGE", Quantity: d("15000"), UnitPrice: d("0.42")})
	require.NoError(t, err)

	snap := l.Snapshot()
	assert.Empty(t, snap.Holdings, "zeroed holding must be removed, not retained")
	assert.True(t, l.CashBalance().Equal(d("6300")))

	// the symbol can be re-bought afterwards
	_, err = l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "DOGE", Quantity: d("100"), UnitPrice: d("0.40")})
	require.NoError(t, err)
	require.Len(t, l.Snapshot().Holdings, 1)
}

func TestRebuyKeepsLastTradePrice(t *testing.T) {
	l := newTestLedger("100000")

	_, err := l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "ETH", Quantity: d("2"), UnitPrice: d("2000")})
	require.NoError(t, err)
	_, err = l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "ETH", Quantity: d("1"), UnitPrice: d("2100")})
	require.NoError(t, err)

	snap := l.Snapshot()
	require.Len(t, snap.Holdings, 1)
	assert.True(t, snap.Holdings[0].Quantity.Equal(d("3")))
	assert.True(t, snap.Holdings[0].ReferencePrice.Equal(d("2100")),
		"reference price follows the latest trade, got %s", snap.Holdings[0].ReferencePrice)
}

func TestPortfolioAndHoldingsValue(t *testing.T) {
	l := newTestLedger("1000",
		SeedHolding{Symbol: "XRP", Quantity: d("1000"), ReferencePrice: d("2.45")},
		SeedHolding{Symbol: "ADA", Quantity: d("5000"), ReferencePrice: d("1.05")},
	)
	assert.True(t, l.HoldingsValue().Equal(d("7700")), "holdings = %s", l.HoldingsValue())
	assert.True(t, l.PortfolioValue().Equal(d("8700")), "portfolio = %s", l.PortfolioValue())
}

func TestSnapshotKeepsInsertionOrder(t *testing.T) {
	l := newTestLedger("100000",
		SeedHolding{Symbol: "BTC", Quantity: d("0.5"), ReferencePrice: d("42567.89")},
		SeedHolding{Symbol: "ETH", Quantity: d("2.5"), ReferencePrice: d("2145.67")},
	)
	_, err := l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "SOL", Quantity: d("5"), UnitPrice: d("349.50")})
	require.NoError(t, err)

	var got []string
	for _, h := range l.Snapshot().Holdings {
		got = append(got, h.Symbol)
	}
	assert.Equal(t, []string{"BTC", "ETH", "SOL"}, got)
}

func TestSeedSkipsInvalidEntries(t *testing.T) {
	l := newTestLedger("100",
		SeedHolding{Symbol: "BAD", Quantity: decimal.Zero, ReferencePrice: d("1")},
		SeedHolding{Symbol: "OK", Quantity: d("1"), ReferencePrice: d("1")},
	)
	snap := l.Snapshot()
	require.Len(t, snap.Holdings, 1)
	assert.Equal(t, "OK", snap.Holdings[0].Symbol)
}

func TestTransactionTimestampDefaultsToNow(t *testing.T) {
	l := newTestLedger("100")
	before := time.Now().UTC()
	tx, err := l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "XRP", Quantity: d("1"), UnitPrice: d("2.45")})
	require.NoError(t, err)
	assert.False(t, tx.Timestamp.Before(before))
}

func TestConcurrentTradesSerialize(t *testing.T) {
	l := newTestLedger("1000")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.ExecuteTrade(TradeRequest{Side: Buy, Symbol: "ADA", Quantity: d("1"), UnitPrice: d("1")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap := l.Snapshot()
	assert.True(t, snap.CashBalance.Equal(d("950")), "cash = %s", snap.CashBalance)
	require.Len(t, snap.Holdings, 1)
	assert.True(t, snap.Holdings[0].Quantity.Equal(d("50")))
	assert.Len(t, snap.Transactions, 50)
}
