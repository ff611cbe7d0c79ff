package statements

import (
	"fmt"

	"github.com/etnz/statements/date"
)

// BuySellEntry pairs the cash leg and the security leg of a trade.
type BuySellEntry struct {
	Account   *AccountTransaction
	Portfolio *PortfolioTransaction
}

// NewBuySellEntry creates both legs of a BUY or SELL.
func NewBuySellEntry(typ Type, on date.DateTime, amount Money, security *Security, shares Shares) *BuySellEntry {
	p := NewPortfolioTransaction(typ, on, amount, security, shares)
	a := NewAccountTransaction(typ, on, amount)
	a.Security = security
	a.Shares = p.Shares
	return &BuySellEntry{Account: a, Portfolio: p}
}

// SetNote sets the note on both legs.
func (e *BuySellEntry) SetNote(note string) { e.Account.Note, e.Portfolio.Note = note, note }

// SetSource sets the source on both legs.
func (e *BuySellEntry) SetSource(src string) { e.Account.Source, e.Portfolio.Source = src, src }

// Validate checks both legs and their mirroring.
func (e *BuySellEntry) Validate() error {
	if e.Account.Type != e.Portfolio.Type || (e.Portfolio.Type != Buy && e.Portfolio.Type != Sell) {
		return fmt.Errorf("buy/sell entry with types %s/%s", e.Account.Type, e.Portfolio.Type)
	}
	if !e.Account.Amount.Equal(e.Portfolio.Amount) {
		return fmt.Errorf("buy/sell legs differ: %s != %s", e.Account.Amount, e.Portfolio.Amount)
	}
	if err := e.Portfolio.Validate(); err != nil {
		return err
	}
	return e.Account.Validate()
}

// AccountTransferEntry moves cash from a source account to a target account,
// possibly in another currency.
type AccountTransferEntry struct {
	Source *AccountTransaction
	Target *AccountTransaction
}

// NewAccountTransferEntry creates the TRANSFER_OUT and TRANSFER_IN legs.
func NewAccountTransferEntry(on date.DateTime, out, in Money) *AccountTransferEntry {
	return &AccountTransferEntry{
		Source: NewAccountTransaction(TransferOut, on, out),
		Target: NewAccountTransaction(TransferIn, on, in),
	}
}

// SetNote sets the note on both legs.
func (e *AccountTransferEntry) SetNote(note string) { e.Source.Note, e.Target.Note = note, note }

// SetSource sets the source on both legs.
func (e *AccountTransferEntry) SetSource(src string) { e.Source.Source, e.Target.Source = src, src }

// Validate checks both legs.
func (e *AccountTransferEntry) Validate() error {
	if e.Source.Type != TransferOut || e.Target.Type != TransferIn {
		return fmt.Errorf("account transfer with types %s/%s", e.Source.Type, e.Target.Type)
	}
	if err := e.Source.Validate(); err != nil {
		return err
	}
	return e.Target.Validate()
}

// PortfolioTransferEntry moves shares from a source portfolio to a target portfolio.
type PortfolioTransferEntry struct {
	Source *PortfolioTransaction
	Target *PortfolioTransaction
}

// NewPortfolioTransferEntry creates the TRANSFER_OUT and TRANSFER_IN legs.
func NewPortfolioTransferEntry(on date.DateTime, amount Money, security *Security, shares Shares) *PortfolioTransferEntry {
	return &PortfolioTransferEntry{
		Source: NewPortfolioTransaction(TransferOut, on, amount, security, shares),
		Target: NewPortfolioTransaction(TransferIn, on, amount, security, shares),
	}
}

// SetNote sets the note on both legs.
func (e *PortfolioTransferEntry) SetNote(note string) { e.Source.Note, e.Target.Note = note, note }

// SetSource sets the source on both legs.
func (e *PortfolioTransferEntry) SetSource(src string) { e.Source.Source, e.Target.Source = src, src }

// Validate checks both legs.
func (e *PortfolioTransferEntry) Validate() error {
	if err := e.Source.Validate(); err != nil {
		return err
	}
	return e.Target.Validate()
}
