package statements

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount expressed in the minor unit of its currency.
type Money struct {
	amount int64 // minor units
	cur    string
}

// M returns Money from an amount already expressed in minor units.
func M(amount int64, currency string) Money { return Money{amount: amount, cur: currency} }

// MoneyOf converts a major unit value into Money, rounding half away from zero to the currency fraction.
func MoneyOf[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	fraction := int32(Fraction(currency))
	d := newDecimal(value).Round(fraction).Shift(fraction)
	return Money{amount: d.IntPart(), cur: currency}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Fraction returns the number of minor unit digits of a currency, 2 for unknown codes.
func Fraction(currency string) int {
	if c := money.GetCurrency(currency); c != nil {
		return c.Fraction
	}
	return 2
}

// KnownCurrency reports whether code is an ISO 4217 code known to the currency table.
func KnownCurrency(code string) bool { return code != "" && money.GetCurrency(code) != nil }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	if m.cur == "" {
		return m.Decimal().StringFixed(2)
	}
	cur := m.currency()
	return cur.Formatter().Format(m.amount)
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -int32(Fraction(m.cur)))
}

func (m Money) Currency() string   { return m.cur }
func (m Money) Amount() int64      { return m.amount }
func (m Money) Equal(n Money) bool { return m.amount == n.amount && m.cur == n.cur }
func (m Money) IsZero() bool       { return m.amount == 0 }
func (m Money) IsPositive() bool   { return m.amount > 0 }
func (m Money) IsNegative() bool   { return m.amount < 0 }
func (m Money) Neg() Money         { return Money{amount: -m.amount, cur: m.cur} }

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.amount < 0 {
		return m.Neg()
	}
	return m
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{amount: m.amount + n.amount, cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{amount: m.amount - n.amount, cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// GoString is used by %#v and test failures.
func (m Money) GoString() string { return fmt.Sprintf("%s %s", m.cur, m.Decimal().String()) }

func (m Money) MarshalJSON() ([]byte, error) {
	var w object
	w.set("amount", m.Decimal().StringFixed(int32(Fraction(m.cur))))
	w.omitZero("currency", m.cur)
	return w.MarshalJSON()
}
