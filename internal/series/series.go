// Package series generates the synthetic price history behind the dashboard
// chart: uniform noise of up to ±5% around a base price, one point per day.
package series

import (
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultDays = 30
	maxDays     = 365
)

type Point struct {
	Date  string          `json:"date"`  // ISO day, e.g. 2025-11-15
	Label string          `json:"label"` // short display form, e.g. Nov 15
	Price decimal.Decimal `json:"price"`
}

type History struct {
	Symbol string          `json:"symbol"`
	Points []Point         `json:"points"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
}

// Generate builds days+1 points ending today. A nil rng falls back to the
// shared source; tests pass a seeded one. A non-positive or oversized days
// is clamped to the default.
func Generate(symbol string, basePrice decimal.Decimal, days int, rng *rand.Rand) History {
	if days <= 0 || days > maxDays {
		days = DefaultDays
	}
	random := rand.Float64
	if rng != nil {
		random = rng.Float64
	}

	base := basePrice.InexactFloat64()
	now := time.Now()
	h := History{Symbol: symbol, Points: make([]Point, 0, days+1)}
	for i := days; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		variance := (random() - 0.5) * base * 0.1
		price := decimal.NewFromFloat(base + variance).Round(2)
		h.Points = append(h.Points, Point{
			Date:  day.Format("2006-01-02"),
			Label: day.Format("Jan 2"),
			Price: price,
		})
		if h.High.IsZero() || price.GreaterThan(h.High) {
			h.High = price
		}
		if h.Low.IsZero() || price.LessThan(h.Low) {
			h.Low = price
		}
	}
	return h
}
