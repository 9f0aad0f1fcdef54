package handlers

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vaibhav45sktech/crypto1/internal/ledger"
	"github.com/vaibhav45sktech/crypto1/internal/profile"
	"github.com/vaibhav45sktech/crypto1/internal/quotes"
	"github.com/vaibhav45sktech/crypto1/internal/series"
)

type Handler struct {
	ledger   *ledger.Ledger
	quotes   *quotes.Service
	profiles *profile.Store
	feeRate  decimal.Decimal
	log      *logrus.Logger
	rng      *rand.Rand
}

func NewHandler(l *ledger.Ledger, q *quotes.Service, p *profile.Store, feeRate decimal.Decimal, log *logrus.Logger) *Handler {
	return &Handler{ledger: l, quotes: q, profiles: p, feeRate: feeRate, log: log}
}

// WithRand sets a seeded random source for the history endpoint. Tests use it.
func (h *Handler) WithRand(rng *rand.Rand) *Handler {
	h.rng = rng
	return h
}

func (h *Handler) GetQuote(c *gin.Context) {
	class, ok := quotes.ParseAssetClass(c.Param("class"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset class must be crypto or stocks"})
		return
	}
	symbol := strings.ToUpper(c.Param("symbol"))

	q, fallback, err := h.quotes.Quote(c.Request.Context(), symbol, class)
	if err != nil {
		h.renderQuoteError(c, symbol, class, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": q, "demo_data": fallback})
}

func (h *Handler) GetQuoteHistory(c *gin.Context) {
	class, ok := quotes.ParseAssetClass(c.Param("class"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asset class must be crypto or stocks"})
		return
	}
	symbol := strings.ToUpper(c.Param("symbol"))

	days := series.DefaultDays
	if v := c.Query("days"); v != "" {
		iv, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
			return
		}
		days = iv
	}

	q, fallback, err := h.quotes.Quote(c.Request.Context(), symbol, class)
	if err != nil {
		h.renderQuoteError(c, symbol, class, err)
		return
	}
	hist := series.Generate(symbol, q.Price, days, h.rng)
	c.JSON(http.StatusOK, gin.H{"history": hist, "demo_data": fallback})
}

func (h *Handler) renderQuoteError(c *gin.Context, symbol string, class quotes.AssetClass, err error) {
	if errors.Is(err, quotes.ErrNoData) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":       "no data found for " + symbol,
			"try_symbols": quotes.FallbackSymbols(class),
		})
		return
	}
	h.log.Errorf("quote lookup failed for %s: %v", symbol, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch data, please try again later"})
}

type TradeRequest struct {
	Side     string `json:"side" binding:"required"`
	Symbol   string `json:"symbol" binding:"required"`
	Quantity string `json:"quantity" binding:"required"`
	Price    string `json:"price"`
	Class    string `json:"class"`
}

func (h *Handler) PostTrade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("invalid trade body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	side, ok := ledger.ParseSide(strings.ToLower(req.Side))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be buy or sell"})
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	qty, err := decimal.NewFromString(req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity format"})
		return
	}

	var price decimal.Decimal
	if req.Price != "" {
		if price, err = decimal.NewFromString(req.Price); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price format"})
			return
		}
	} else {
		// no explicit price: trade at the current quote
		class := quotes.Crypto
		if req.Class != "" {
			if class, ok = quotes.ParseAssetClass(req.Class); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "asset class must be crypto or stocks"})
				return
			}
		}
		q, _, qerr := h.quotes.Quote(c.Request.Context(), symbol, class)
		if qerr != nil {
			h.renderQuoteError(c, symbol, class, qerr)
			return
		}
		price = q.Price
	}

	tx, err := h.ledger.ExecuteTrade(ledger.TradeRequest{
		Side:      side,
		Symbol:    symbol,
		Quantity:  qty,
		UnitPrice: price,
		FeeRate:   h.feeRate,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ledger.ErrInsufficientFunds) || errors.Is(err, ledger.ErrInsufficientHoldings) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction":  renderTransaction(tx),
		"cash_balance": h.ledger.CashBalance().StringFixed(2),
	})
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	snap := h.ledger.Snapshot()

	holdings := make([]gin.H, 0, len(snap.Holdings))
	for _, hd := range snap.Holdings {
		holdings = append(holdings, gin.H{
			"symbol":          hd.Symbol,
			"quantity":        hd.Quantity.String(),
			"reference_price": hd.ReferencePrice.StringFixed(2),
			"total":           hd.Value().StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"cash_balance":    snap.CashBalance.StringFixed(2),
		"holdings":        holdings,
		"holdings_value":  snap.HoldingsValue.StringFixed(2),
		"portfolio_value": snap.PortfolioValue.StringFixed(2),
		"asset_count":     len(holdings),
	})
}

func (h *Handler) GetTransactions(c *gin.Context) {
	snap := h.ledger.Snapshot()
	txs := make([]gin.H, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		txs = append(txs, renderTransaction(tx))
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func renderTransaction(tx ledger.Transaction) gin.H {
	return gin.H{
		"id":         tx.ID,
		"side":       string(tx.Side),
		"symbol":     tx.Symbol,
		"quantity":   tx.Quantity.String(),
		"unit_price": tx.UnitPrice.StringFixed(2),
		"total":      tx.Total.StringFixed(2),
		"date":       tx.Timestamp.Format("2006-01-02"),
		"timestamp":  tx.Timestamp.Format(time.RFC3339),
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.profiles.Get())
}

type ProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

func (h *Handler) PutProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.profiles.Update(req.Name, req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, u)
}
