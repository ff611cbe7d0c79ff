package statements

import (
	"fmt"

	"github.com/etnz/statements/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit is a typed monetary component of a transaction.
//
// A GrossValue unit carries the forex pair: Amount in the transaction
// currency, Forex in the security currency and Rate such that
// Amount ≈ Forex * Rate.
type Unit struct {
	Type   UnitType
	Amount Money
	Forex  *Money
	Rate   decimal.Decimal
}

func (u Unit) MarshalJSON() ([]byte, error) {
	var w object
	w.set("type", u.Type)
	w.set("amount", u.Amount)
	if u.Forex != nil {
		w.set("forex", *u.Forex)
		w.set("rate", u.Rate)
	}
	return w.MarshalJSON()
}

// Transaction is implemented by AccountTransaction and PortfolioTransaction.
type Transaction interface {
	Base() *Tx
	Kind() string
}

// Tx holds what account and portfolio transactions have in common.
type Tx struct {
	UUID     string
	Type     Type
	DateTime date.DateTime
	Amount   Money // net amount, always non-negative
	Security *Security
	Shares   Shares
	Note     string
	Source   string
	Units    []Unit
}

func newBase(typ Type, on date.DateTime, amount Money) Tx {
	return Tx{UUID: uuid.NewString(), Type: typ, DateTime: on, Amount: amount}
}

// Base returns t, giving access to the common fields through the Transaction interface.
func (t *Tx) Base() *Tx { return t }

// AddUnit appends u to the transaction units.
func (t *Tx) AddUnit(u Unit) { t.Units = append(t.Units, u) }

// Unit returns the first unit of type typ.
func (t *Tx) Unit(typ UnitType) (Unit, bool) {
	for _, u := range t.Units {
		if u.Type == typ {
			return u, true
		}
	}
	return Unit{}, false
}

// UnitSum returns the sum of the units of type typ, in the transaction currency.
func (t *Tx) UnitSum(typ UnitType) Money {
	sum := M(0, t.Amount.Currency())
	for _, u := range t.Units {
		if u.Type == typ {
			sum = sum.Add(u.Amount)
		}
	}
	return sum
}

// GrossValue returns net + taxes + fees.
func (t *Tx) GrossValue() Money {
	return t.Amount.Add(t.UnitSum(Tax)).Add(t.UnitSum(Fee))
}

func (t *Tx) marshal(w *object) {
	w.set("uuid", t.UUID)
	w.set("type", t.Type)
	w.set("date", t.DateTime)
	w.set("amount", t.Amount)
	if t.Security != nil {
		w.set("security", t.Security.UUID)
	}
	w.omitZero("shares", t.Shares)
	w.omitZero("note", t.Note)
	w.omitZero("source", t.Source)
	if len(t.Units) > 0 {
		w.set("units", t.Units)
	}
}

// AccountTransaction is a cash movement on an account.
type AccountTransaction struct{ Tx }

// NewAccountTransaction returns a cash transaction; the amount is stored as a magnitude.
func NewAccountTransaction(typ Type, on date.DateTime, amount Money) *AccountTransaction {
	return &AccountTransaction{newBase(typ, on, amount.Abs())}
}

func (t *AccountTransaction) Kind() string { return "account" }

// Validate checks the type and share invariants of t.
func (t *AccountTransaction) Validate() error {
	if !t.Type.IsAccount() {
		return fmt.Errorf("type %s is not valid on an account", t.Type)
	}
	if t.Type.IsCash() && !t.Shares.IsZero() {
		return fmt.Errorf("%s must not carry shares, got %s", t.Type, t.Shares)
	}
	return validate(&t.Tx)
}

func (t *AccountTransaction) MarshalJSON() ([]byte, error) {
	var w object
	t.marshal(&w)
	return w.MarshalJSON()
}

// PortfolioTransaction is a movement of shares in a securities portfolio.
type PortfolioTransaction struct{ Tx }

// NewPortfolioTransaction returns a security transaction; the amount is stored as a magnitude.
func NewPortfolioTransaction(typ Type, on date.DateTime, amount Money, security *Security, shares Shares) *PortfolioTransaction {
	t := &PortfolioTransaction{newBase(typ, on, amount.Abs())}
	t.Security = security
	t.Shares = shares.Abs()
	return t
}

func (t *PortfolioTransaction) Kind() string { return "portfolio" }

// Validate checks the type and share invariants of t.
func (t *PortfolioTransaction) Validate() error {
	if !t.Type.IsPortfolio() {
		return fmt.Errorf("type %s is not valid on a portfolio", t.Type)
	}
	if t.Security == nil {
		return &MissingSecurityReferenceError{Type: t.Type}
	}
	if t.Shares.IsZero() {
		return fmt.Errorf("%s requires shares", t.Type)
	}
	return validate(&t.Tx)
}

func (t *PortfolioTransaction) MarshalJSON() ([]byte, error) {
	var w object
	t.marshal(&w)
	return w.MarshalJSON()
}

func validate(t *Tx) error {
	if t.Type.RequiresShares() && t.Shares.IsZero() {
		return fmt.Errorf("%s requires shares", t.Type)
	}
	if t.Type.RequiresSecurity() && t.Security == nil {
		return &MissingSecurityReferenceError{Type: t.Type}
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("amount must be a magnitude, got %s", t.Amount)
	}
	return nil
}
