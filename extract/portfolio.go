package extract

import (
	"context"

	"github.com/etnz/statements"
	"github.com/etnz/statements/binding"
	"github.com/etnz/statements/field"
	"github.com/etnz/statements/resolve"
)

// PortfolioExtractor reads securities account statements: trades, transfers
// and deliveries. Every record references a security and a quantity.
type PortfolioExtractor struct {
	ledger resolve.Ledger
	fields []field.Field
	opts   options
}

// NewPortfolioExtractor returns an extractor resolving securities against ledger.
func NewPortfolioExtractor(ledger resolve.Ledger, opts ...Option) *PortfolioExtractor {
	return &PortfolioExtractor{
		ledger: ledger,
		fields: field.PortfolioFields(),
		opts:   newOptions("portfolio-transaction", opts),
	}
}

func (e *PortfolioExtractor) Code() string          { return "portfolio-transaction" }
func (e *PortfolioExtractor) Fields() []field.Field { return e.fields }

// Extract converts records, one run per call.
func (e *PortfolioExtractor) Extract(ctx context.Context, records []binding.Record) *Result {
	return newRun(e.ledger, portfolioRules{e.ledger}, e.opts).extract(ctx, records)
}

type portfolioRules struct {
	ledger resolve.Ledger
}

// infer keeps an explicit type, otherwise a negative amount is a purchase
// and a positive one a sale.
func (p portfolioRules) infer(v *values) error {
	if !v.explicit {
		v.typ = statements.Sell
		if v.amount.IsNegative() {
			v.typ = statements.Buy
		}
	}
	if v.ref.IsZero() {
		return &statements.MissingSecurityReferenceError{Type: v.typ}
	}
	if v.shares.IsZero() {
		return &statements.MissingMandatoryFieldError{Field: field.Shares}
	}
	return requireSecurity(v)
}

func (p portfolioRules) securityCurrency(v *values) string {
	switch {
	case v.grossCurrency != "":
		return v.grossCurrency
	case v.currency != "":
		return v.currency
	}
	return p.ledger.Currency()
}

func (p portfolioRules) build(v *values) (statements.Item, []*statements.Tx, error) {
	amount := v.money()
	shares := statements.SharesOf(v.shares.Abs())
	switch v.typ {
	case statements.Buy, statements.Sell:
		e := statements.NewBuySellEntry(v.typ, v.on, amount, v.security, shares)
		e.SetNote(v.note)
		e.SetSource(v.Source)
		return &statements.BuySellItem{Entry: e, Booking: v.labels}, []*statements.Tx{&e.Portfolio.Tx}, nil

	case statements.TransferIn, statements.TransferOut:
		e := statements.NewPortfolioTransferEntry(v.on, amount, v.security, shares)
		e.SetNote(v.note)
		e.SetSource(v.Source)
		// a transfer moves shares, taxes and fees are not booked
		return &statements.PortfolioTransferItem{Entry: e, Booking: v.labels}, nil, nil
	}

	t := statements.NewPortfolioTransaction(v.typ, v.on, amount, v.security, shares)
	t.Note, t.Source = v.note, v.Source
	return &statements.TransactionItem{Transaction: t, Booking: v.labels}, []*statements.Tx{&t.Tx}, nil
}
