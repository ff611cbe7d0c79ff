package extract

import (
	"errors"
	"strings"

	"github.com/etnz/statements"
	"github.com/etnz/statements/binding"
	"github.com/etnz/statements/date"
	"github.com/etnz/statements/field"
	"github.com/etnz/statements/reconcile"
	"github.com/etnz/statements/resolve"
	"github.com/shopspring/decimal"
)

// values are the typed values of a record, filled state after state.
type values struct {
	binding.Record

	on       date.DateTime
	amount   decimal.Decimal // signed as written
	currency string
	typ      statements.Type
	explicit bool // typ was read from the record

	shares        decimal.Decimal
	tax, fee      decimal.Decimal
	gross         decimal.Decimal
	hasGross      bool
	grossCurrency string
	rate          decimal.Decimal

	ref      resolve.Reference
	security *statements.Security
	note     string
	labels   statements.Labels

	item statements.Item
}

// money returns the magnitude of the record amount.
func (v *values) money() statements.Money { return statements.MoneyOf(v.amount.Abs(), v.currency) }

// forexCurrency is the currency the gross value is also expressed in, blank
// when the referenced security is quoted in the transaction currency.
func (v *values) forexCurrency() string {
	if v.security != nil && v.security.Currency == v.currency {
		return ""
	}
	if v.grossCurrency != "" {
		return v.grossCurrency
	}
	if v.security != nil {
		return v.security.Currency
	}
	return ""
}

var errCurrency = errors.New("unknown currency code")

// fields reads the values of every bound field. Date and value are mandatory.
func (x *run) fields(v *values) error {
	r := v.Record
	if err := r.Mandatory(field.Date); err != nil {
		return err
	}
	on, _, err := r.Date(field.Date)
	if err != nil {
		return err
	}
	v.on = date.Midnight(on)
	if c, ok := r.Clock(field.Time); ok {
		v.on = date.At(on, c.Hour, c.Minute, c.Second)
	}

	if err := r.Mandatory(field.Value); err != nil {
		return err
	}
	if v.amount, _, err = r.Amount(field.Value); err != nil {
		return err
	}
	if v.currency, err = x.currency(r, field.Currency, x.ledger.Currency()); err != nil {
		return err
	}
	if v.grossCurrency, err = x.currency(r, field.CurrencyGross, ""); err != nil {
		return err
	}

	for _, a := range []struct {
		code string
		dst  *decimal.Decimal
		ok   *bool
	}{
		{field.Shares, &v.shares, nil},
		{field.Taxes, &v.tax, nil},
		{field.Fees, &v.fee, nil},
		{field.Gross, &v.gross, &v.hasGross},
		{field.ExchangeRate, &v.rate, nil},
	} {
		d, ok, err := r.Amount(a.code)
		if err != nil {
			return err
		}
		*a.dst = d
		if a.ok != nil {
			*a.ok = ok
		}
	}

	if r.Bound(field.Type) {
		t, ok, err := r.Type(field.Type)
		if err != nil {
			return err
		}
		v.typ, v.explicit = t, ok
	}

	isin, _, err := r.Parse(field.ISIN)
	if err != nil {
		return err
	}
	if s, ok := isin.(string); ok {
		v.ref.ISIN = s
	}
	v.ref.WKN = r.Text(field.WKN)
	v.ref.Ticker = r.Text(field.Ticker)
	v.ref.SEDOL = r.Text(field.SEDOL)
	v.ref.Name = r.Text(field.SecurityName)
	if x.finder != nil && v.ref.ISIN == "" && v.ref.WKN == "" && v.ref.Ticker == "" && v.ref.SEDOL == "" && r.Body != "" {
		if found, err := x.finder.Parse(r.Body); err == nil {
			v.ref.ISIN = found.(string)
		}
	}

	v.note = r.Text(field.Note)
	v.labels = statements.Labels{
		Account:      r.Text(field.Account),
		Account2nd:   r.Text(field.Account2nd),
		Portfolio:    r.Text(field.Portfolio),
		Portfolio2nd: r.Text(field.Portfolio2nd),
	}
	return nil
}

// currency reads a currency code, def when blank.
func (x *run) currency(r binding.Record, code, def string) (string, error) {
	raw := r.Text(code)
	if raw == "" {
		return def, nil
	}
	cur := strings.ToUpper(raw)
	if !statements.KnownCurrency(cur) {
		return "", &statements.FormatError{Field: code, Value: raw, Err: errCurrency}
	}
	return cur, nil
}

// reconcile builds the item and attaches the monetary units.
func (x *run) reconcile(v *values) error {
	item, targets, err := x.rules.build(v)
	if err != nil {
		return err
	}
	in := reconcile.Input{
		Tax:           statements.MoneyOf(v.tax.Abs(), v.currency),
		Fee:           statements.MoneyOf(v.fee.Abs(), v.currency),
		Rate:          v.rate,
		ForexCurrency: v.forexCurrency(),
	}
	if v.hasGross && in.ForexCurrency != "" {
		gross := statements.MoneyOf(v.gross.Abs(), in.ForexCurrency)
		in.Gross = &gross
	}
	for _, tx := range targets {
		if err := reconcile.Apply(tx, in); err != nil {
			return err
		}
		if err := reconcile.CheckGross(tx); err != nil {
			return err
		}
	}
	v.item = item
	return nil
}

// requireSecurity checks the type requirements on security and shares.
func requireSecurity(v *values) error {
	if v.typ.RequiresSecurity() && v.ref.IsZero() {
		return &statements.MissingSecurityReferenceError{Type: v.typ}
	}
	if v.typ.RequiresShares() && v.shares.IsZero() {
		return &statements.MissingMandatoryFieldError{Field: field.Shares}
	}
	return nil
}
