package rates

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finbridge/foliosync"
)

// ErrNoRate is returned when a fixed table has no entry for a currency pair.
var ErrNoRate = errors.New("no rate for currency pair")

// Fixed is an in-memory rate table, date-independent. It is a fit for tests
// and offline runs where a handful of pairs is enough.
//
// Set stores both directions of a pair, so a table seeded with EUR->USD also
// answers USD->EUR.
type Fixed struct {
	pairs map[string]decimal.Decimal
}

// NewFixed creates an empty table.
func NewFixed() *Fixed {
	return &Fixed{pairs: make(map[string]decimal.Decimal)}
}

// Set registers the (from -> to) rate and its reciprocal.
func (f *Fixed) Set(from, to foliosync.Currency, rate decimal.Decimal) *Fixed {
	f.pairs[pairKey(from, to)] = rate
	if !rate.IsZero() {
		f.pairs[pairKey(to, from)] = decimal.NewFromInt(1).Div(rate)
	}
	return f
}

// ConversionRate returns the registered rate for the pair. Identical or
// absent currencies convert at 1; an unknown pair is an ErrNoRate error.
func (f *Fixed) ConversionRate(from, to foliosync.Currency, _ foliosync.Date) (decimal.Decimal, error) {
	if from == to || from.IsZero() || to.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := f.pairs[pairKey(from, to)]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: %s/%s", ErrNoRate, from, to)
	}
	return rate, nil
}

func pairKey(from, to foliosync.Currency) string {
	return from.String() + "/" + to.String()
}

// both services satisfy the conversion interface.
var _ foliosync.ExchangeRateService = (*Frankfurter)(nil)
var _ foliosync.ExchangeRateService = (*Fixed)(nil)
