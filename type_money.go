package foliosync

import (
	"encoding/json"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency identifies a monetary unit by its symbol (e.g. "USD", "BTC").
// Two currencies are equal iff their symbols match.
type Currency string

func (c Currency) String() string { return string(c) }

// IsZero reports whether the currency is absent.
func (c Currency) IsZero() bool { return c == "" }

// Equal reports whether both currencies have the same symbol.
func (c Currency) Equal(o Currency) bool { return c == o }

// IsFiat reports whether the symbol names a known fiat currency. The check
// goes through the go-money ISO-4217 registry, so crypto symbols and private
// bookkeeping symbols are not fiat.
func (c Currency) IsFiat() bool {
	if c.IsZero() {
		return false
	}
	return money.GetCurrency(string(c)) != nil
}

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   Currency
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency Currency) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's full currency description.
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, string(m.cur)).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() Currency      { return m.cur }
func (m Money) Amount() decimal.Decimal { return m.value }

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool      { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Div(n Quantity) Money            { return Money{value: m.value.Div(n.value), cur: m.cur} }

// Scale multiplies the amount by a bare decimal factor, keeping the currency.
func (m Money) Scale(f decimal.Decimal) Money { return Money{value: m.value.Mul(f), cur: m.cur} }

// Round returns the money rounded to the given number of decimal places.
func (m Money) Round(places int32) Money { return Money{value: m.value.Round(places), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) Currency {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur.String() + "!=" + B.cur.String())
	}
	return A.cur
}

// IsAbsent reports whether the money carries neither an amount nor a currency.
func (m Money) IsAbsent() bool { return m.value.IsZero() && m.cur.IsZero() }

func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", string(m.cur))
	w.Append("amount", m.value)
	return w.MarshalJSON()
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var temp moneyCmd
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*m = temp.Money()
	return nil
}
