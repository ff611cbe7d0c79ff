// Package reconcile derives the monetary units of a transaction from the
// amounts stated in a statement.
//
// Taxes and fees are non-negative magnitudes deducted from the gross value to
// reach the net amount, whatever the direction of the transaction:
//
//	gross = net + tax + fee
//
// When the security is quoted in another currency than the transaction, the
// gross value is also expressed in that currency with the applied rate. The
// rate of a unit is always the amount of transaction currency per unit of
// forex currency.
//
// Statements write the exchange rate both ways. Next to a stated gross value
// the rate is transaction currency per forex unit (a EUR account selling a
// USD stock at 0.9091). Alone, it is forex currency per transaction unit (a
// EUR/USD quote of 1.1194), and the unit carries its inverse.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/etnz/statements"
	"github.com/shopspring/decimal"
)

// rateDigits is the precision of derived exchange rates.
const rateDigits = 10

// Input holds the amounts a statement states besides the net amount.
type Input struct {
	Tax           statements.Money  // in the transaction currency
	Fee           statements.Money  // in the transaction currency
	Gross         *statements.Money // gross value in ForexCurrency, when stated
	Rate          decimal.Decimal   // as written, zero when not stated; see the package documentation
	ForexCurrency string            // explicit gross currency, else the security currency
}

var errRate = errors.New("exchange rate must be positive")

// Apply attaches the TAX, FEE and GROSS_VALUE units of in to tx.
//
// TAX and FEE units are attached when non-zero. A GROSS_VALUE unit is only
// attached when a forex pair can be established: a forex currency distinct
// from the transaction currency, and either a rate or a stated gross in the
// forex currency.
func Apply(tx *statements.Tx, in Input) error {
	cur := tx.Amount.Currency()
	for _, u := range []struct {
		typ statements.UnitType
		m   statements.Money
	}{{statements.Tax, in.Tax}, {statements.Fee, in.Fee}} {
		if u.m.IsZero() {
			continue
		}
		if u.m.Currency() != "" && u.m.Currency() != cur {
			return fmt.Errorf("%s of %s is not in the transaction currency %s", u.typ, u.m, cur)
		}
		tx.AddUnit(statements.Unit{Type: u.typ, Amount: statements.M(u.m.Abs().Amount(), cur)})
	}

	if in.ForexCurrency == "" || in.ForexCurrency == cur {
		return nil
	}
	gross := tx.GrossValue()
	unit, ok, err := forexUnit(gross, in)
	if err != nil || !ok {
		return err
	}
	tx.AddUnit(unit)
	return nil
}

func forexUnit(gross statements.Money, in Input) (statements.Unit, bool, error) {
	switch {
	case in.Rate.IsNegative():
		return statements.Unit{}, false, errRate
	case in.Rate.IsPositive() && in.Gross == nil:
		forex := statements.MoneyOf(gross.Decimal().Mul(in.Rate), in.ForexCurrency)
		rate := decimal.NewFromInt(1).DivRound(in.Rate, rateDigits)
		if !withinMinorUnit(forex, rate, gross) {
			rate = effectiveRate(gross, forex)
		}
		return statements.Unit{Type: statements.GrossValue, Amount: gross, Forex: &forex, Rate: rate}, true, nil
	case in.Rate.IsPositive():
		forex := statements.MoneyOf(gross.Decimal().Div(in.Rate), in.ForexCurrency)
		rate := in.Rate
		if !withinMinorUnit(forex, rate, gross) {
			// the stated rate is too coarse for the amounts, use the effective one
			rate = effectiveRate(gross, forex)
		}
		return statements.Unit{Type: statements.GrossValue, Amount: gross, Forex: &forex, Rate: rate}, true, nil
	case in.Gross != nil && !in.Gross.IsZero():
		if in.Gross.Currency() != in.ForexCurrency {
			return statements.Unit{}, false, fmt.Errorf("gross %s is not in the forex currency %s", in.Gross, in.ForexCurrency)
		}
		forex := in.Gross.Abs()
		return statements.Unit{Type: statements.GrossValue, Amount: gross, Forex: &forex, Rate: effectiveRate(gross, forex)}, true, nil
	}
	return statements.Unit{}, false, nil
}

func effectiveRate(gross, forex statements.Money) decimal.Decimal {
	if forex.IsZero() {
		return decimal.Zero
	}
	return gross.Decimal().DivRound(forex.Decimal(), rateDigits)
}

// withinMinorUnit reports whether forex converted at rate is at most one minor
// unit away from amount.
func withinMinorUnit(forex statements.Money, rate decimal.Decimal, amount statements.Money) bool {
	converted := statements.MoneyOf(forex.Decimal().Mul(rate), amount.Currency())
	diff := converted.Amount() - amount.Amount()
	return diff >= -1 && diff <= 1
}

// ConvertForeign converts m, stated in a foreign currency, into currency at
// rate, the amount of m's currency per unit of currency: a USD tax on a EUR
// statement quoting EUR/USD 1.25.
func ConvertForeign(m statements.Money, currency string, rate decimal.Decimal) (statements.Money, error) {
	if m.Currency() == currency || m.Currency() == "" {
		return statements.M(m.Amount(), currency), nil
	}
	if !rate.IsPositive() {
		return statements.Money{}, fmt.Errorf("cannot convert %s to %s: %w", m, currency, errRate)
	}
	return statements.MoneyOf(m.Decimal().Div(rate), currency), nil
}

// CheckGross verifies the units of tx: the gross value unit equals net plus
// taxes plus fees, and its forex pair converts back within one minor unit.
func CheckGross(tx *statements.Tx) error {
	for _, u := range tx.Units {
		if u.Amount.IsNegative() {
			return fmt.Errorf("%s unit is negative: %s", u.Type, u.Amount)
		}
	}
	u, ok := tx.Unit(statements.GrossValue)
	if !ok {
		return nil
	}
	if gross := tx.GrossValue(); !u.Amount.Equal(gross) {
		return fmt.Errorf("gross value %s differs from net + tax + fee %s", u.Amount, gross)
	}
	if u.Forex != nil && !withinMinorUnit(*u.Forex, u.Rate, u.Amount) {
		return fmt.Errorf("forex %s at %s does not convert to %s", u.Forex, u.Rate, u.Amount)
	}
	return nil
}
