package quotes

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// Service resolves quotes through a Provider and substitutes bundled demo
// data when the fetch fails or the provider is rate limited. Substitution is
// the documented recovery: the service never retries and never lets a fetch
// failure escape when a fallback exists.
type Service struct {
	provider Provider
	log      *logrus.Logger
}

func NewService(p Provider, log *logrus.Logger) *Service {
	return &Service{provider: p, log: log}
}

// Quote returns the current quote for a symbol. The second return value is
// true when the record came from the bundled fallback set rather than the
// live provider. ErrNoData is returned when neither source knows the symbol.
func (s *Service) Quote(ctx context.Context, symbol string, class AssetClass) (QuoteRecord, bool, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return QuoteRecord{}, false, ErrNoData
	}

	q, err := s.provider.FetchQuote(ctx, symbol, class)
	if err == nil {
		return q, false, nil
	}

	if fb, ok := Fallback(symbol, class); ok {
		if errors.Is(err, ErrRateLimited) {
			s.log.Warnf("quote provider rate limited for %s, serving demo data", symbol)
		} else {
			s.log.Warnf("quote fetch failed for %s (%v), serving demo data", symbol, err)
		}
		return fb, true, nil
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrNoData) {
		return QuoteRecord{}, false, ErrNoData
	}
	return QuoteRecord{}, false, err
}
