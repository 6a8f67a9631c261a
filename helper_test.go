package foliosync

import (
	"errors"

	"github.com/shopspring/decimal"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// identityRates is a rate service that only knows identical currencies.
type identityRates struct{}

func (identityRates) ConversionRate(from, to Currency, _ Date) (decimal.Decimal, error) {
	return decimal.NewFromInt(1), nil
}

// stubRates is a rate service backed by a fixed (from, to) table, with
// identity for same-currency conversions.
type stubRates map[string]float64

func (s stubRates) ConversionRate(from, to Currency, _ Date) (decimal.Decimal, error) {
	if from == to || from.IsZero() || to.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := s[from.String()+to.String()]
	if !ok {
		return decimal.Decimal{}, errNoStubRate
	}
	return decimal.NewFromFloat(rate), nil
}

var errNoStubRate = errors.New("no stub rate")

// aapl returns a fresh equity profile for tests.
func aapl() *SymbolProfile {
	return NewSymbolProfile("AAPL", "YAHOO", AssetClassEquity, SubClassStock, "USD")
}

// btc returns a fresh crypto profile for tests.
func btc() *SymbolProfile {
	return NewSymbolProfile("BTC", "COINGECKO", AssetClassLiquidity, SubClassCryptoCurrency, "USD")
}
