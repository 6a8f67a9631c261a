package foliosync

import (
	"github.com/shopspring/decimal"
)

// epsilon is the tolerance under which two numbers are considered equal.
// Brokers report the same economic fact with different floating point noise,
// so exact comparison would flag spurious updates on every import.
var epsilon = decimal.New(1, -6) // 1e-6

// AdjustedPrecision is the number of decimal places kept on adjusted figures,
// matching the precision ceiling of the downstream sync target.
const AdjustedPrecision = 10

// ExchangeRateService converts money between currencies at a given date.
// Implementations must return 1 for identical currencies.
type ExchangeRateService interface {
	ConversionRate(from, to Currency, on Date) (decimal.Decimal, error)
}

// NumbersEqual reports whether |a-b| < epsilon. Absent values behave as zero.
func NumbersEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(epsilon)
}

// MoneyEqual converts every entry of both lists to the target currency at the
// given date, sums each side and compares the sums with epsilon tolerance.
//
// It fails closed: an absent target currency or a failing conversion makes the
// comparison false, so a doubtful activity is reported as updated rather than
// silently deduplicated.
func MoneyEqual(rates ExchangeRateService, target Currency, on Date, listA, listB []Money) bool {
	if target.IsZero() {
		return false
	}
	sumA, err := sumIn(rates, target, on, listA)
	if err != nil {
		return false
	}
	sumB, err := sumIn(rates, target, on, listB)
	if err != nil {
		return false
	}
	return NumbersEqual(sumA, sumB)
}

// sumIn converts every money to the target currency at the given date and
// returns the total amount.
func sumIn(rates ExchangeRateService, target Currency, on Date, list []Money) (decimal.Decimal, error) {
	var sum decimal.Decimal
	for _, m := range list {
		if m.IsAbsent() {
			continue
		}
		rate, err := rates.ConversionRate(m.Currency(), target, on)
		if err != nil {
			return decimal.Decimal{}, err
		}
		sum = sum.Add(m.Amount().Mul(rate))
	}
	return sum, nil
}

// RoundAndConvert converts the value to the target currency at the spot rate
// of the given date and rounds it to AdjustedPrecision decimal places.
// The input is returned unchanged when the target or the value is absent, or
// when no rate can be obtained.
func RoundAndConvert(rates ExchangeRateService, value Money, target Currency, on Date) Money {
	if target.IsZero() || value.IsAbsent() {
		return value
	}
	rate, err := rates.ConversionRate(value.Currency(), target, on)
	if err != nil {
		return value
	}
	return M(value.Amount().Mul(rate), target).Round(AdjustedPrecision)
}
