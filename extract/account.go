package extract

import (
	"context"

	"github.com/etnz/statements"
	"github.com/etnz/statements/binding"
	"github.com/etnz/statements/field"
	"github.com/etnz/statements/resolve"
	"github.com/shopspring/decimal"
)

// AccountExtractor reads cash account statements: deposits, removals,
// dividends, interest, fees, taxes, trades and transfers.
type AccountExtractor struct {
	ledger resolve.Ledger
	fields []field.Field
	opts   options
}

// NewAccountExtractor returns an extractor resolving securities against ledger.
func NewAccountExtractor(ledger resolve.Ledger, opts ...Option) *AccountExtractor {
	return &AccountExtractor{
		ledger: ledger,
		fields: field.AccountFields(),
		opts:   newOptions("account-transaction", opts),
	}
}

func (e *AccountExtractor) Code() string          { return "account-transaction" }
func (e *AccountExtractor) Fields() []field.Field { return e.fields }

// Extract converts records, one run per call.
func (e *AccountExtractor) Extract(ctx context.Context, records []binding.Record) *Result {
	return newRun(e.ledger, accountRules{e.ledger}, e.opts).extract(ctx, records)
}

type accountRules struct {
	ledger resolve.Ledger
}

// infer keeps an explicit type, otherwise: a security with shares is a trade
// whose direction is the sign of the amount, a security without shares is a
// dividend, no security is a deposit or a removal.
func (a accountRules) infer(v *values) error {
	if !v.explicit {
		switch {
		case !v.ref.IsZero() && !v.shares.IsZero():
			v.typ = statements.Sell
			if v.amount.IsNegative() {
				v.typ = statements.Buy
			}
		case !v.ref.IsZero():
			v.typ = statements.Dividends
		case v.amount.IsNegative():
			v.typ = statements.Removal
		default:
			v.typ = statements.Deposit
		}
	}
	if v.typ.IsCash() {
		// cash movements reference no security
		v.ref = resolve.Reference{}
		v.shares = decimal.Zero
	}
	return requireSecurity(v)
}

func (a accountRules) securityCurrency(v *values) string {
	if v.currency != "" {
		return v.currency
	}
	return a.ledger.Currency()
}

func (a accountRules) build(v *values) (statements.Item, []*statements.Tx, error) {
	amount := v.money()
	shares := statements.SharesOf(v.shares.Abs())
	switch v.typ {
	case statements.Buy, statements.Sell:
		e := statements.NewBuySellEntry(v.typ, v.on, amount, v.security, shares)
		e.SetNote(v.note)
		e.SetSource(v.Source)
		return &statements.BuySellItem{Entry: e, Booking: v.labels}, []*statements.Tx{&e.Portfolio.Tx}, nil

	case statements.TransferIn, statements.TransferOut:
		e := statements.NewAccountTransferEntry(v.on, amount, v.transferTarget(amount))
		e.SetNote(v.note)
		e.SetSource(v.Source)
		return &statements.AccountTransferItem{Entry: e, Booking: v.labels}, []*statements.Tx{&e.Source.Tx}, nil
	}

	if amount.IsZero() {
		return &statements.NonImportableItem{Type: v.typ, Reason: "amount is zero", Origin: v.Source, Memo: v.note}, nil, nil
	}
	t := statements.NewAccountTransaction(v.typ, v.on, amount)
	t.Security = v.security
	if !v.typ.IsCash() {
		t.Shares = shares
	}
	t.Note, t.Source = v.note, v.Source
	return &statements.TransactionItem{Transaction: t, Booking: v.labels}, []*statements.Tx{&t.Tx}, nil
}

// transferTarget is the amount credited on the target account in the gross
// currency. A rate next to a stated gross is source currency per target unit,
// a rate alone target currency per source unit.
func (v *values) transferTarget(amount statements.Money) statements.Money {
	if v.grossCurrency == "" || v.grossCurrency == v.currency {
		return amount
	}
	switch {
	case v.rate.IsPositive() && v.hasGross:
		return statements.MoneyOf(amount.Decimal().Div(v.rate), v.grossCurrency)
	case v.rate.IsPositive():
		return statements.MoneyOf(amount.Decimal().Mul(v.rate), v.grossCurrency)
	case v.hasGross:
		return statements.MoneyOf(v.gross.Abs(), v.grossCurrency)
	}
	return amount
}
