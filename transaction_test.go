package statements

import (
	"errors"
	"testing"
)

func TestParseType(t *testing.T) {
	for _, typ := range append(AccountTypes(), PortfolioTypes()...) {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%q) = %q, %v", typ, got, err)
		}
	}
	for _, s := range []string{"", "buy", "PURCHASE"} {
		if _, err := ParseType(s); err == nil {
			t.Errorf("ParseType(%q) succeeded", s)
		}
	}
}

func TestTypePredicates(t *testing.T) {
	testCases := []struct {
		typ                                   Type
		cash, security, shares, debit, folder bool
	}{
		{Buy, false, true, true, true, true},
		{Sell, false, true, true, false, true},
		{Dividends, false, true, false, false, false},
		{Deposit, true, false, false, false, false},
		{Removal, true, false, false, true, false},
		{TransferOut, true, false, false, true, true},
		{Fees, false, false, false, true, false},
		{TaxRefund, false, false, false, false, false},
		{InterestCharge, true, false, false, true, false},
		{DeliveryInbound, false, true, true, false, true},
	}
	for _, tc := range testCases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			if got := tc.typ.IsCash(); got != tc.cash {
				t.Errorf("IsCash() = %v", got)
			}
			if got := tc.typ.RequiresSecurity(); got != tc.security {
				t.Errorf("RequiresSecurity() = %v", got)
			}
			if got := tc.typ.RequiresShares(); got != tc.shares {
				t.Errorf("RequiresShares() = %v", got)
			}
			if got := tc.typ.IsDebit(); got != tc.debit {
				t.Errorf("IsDebit() = %v", got)
			}
			if got := tc.typ.IsPortfolio(); got != tc.folder {
				t.Errorf("IsPortfolio() = %v", got)
			}
		})
	}
}

func TestAccountTransactionValidate(t *testing.T) {
	testCases := []struct {
		name    string
		tx      func() *AccountTransaction
		wantErr bool
	}{
		{
			name: "deposit",
			tx:   func() *AccountTransaction { return NewAccountTransaction(Deposit, on("2013-01-02"), EUR(-100)) },
		},
		{
			name: "deposit with shares",
			tx: func() *AccountTransaction {
				tx := NewAccountTransaction(Deposit, on("2013-01-02"), EUR(100))
				tx.Shares = SharesOf(1)
				return tx
			},
			wantErr: true,
		},
		{
			name:    "dividends without security",
			tx:      func() *AccountTransaction { return NewAccountTransaction(Dividends, on("2013-01-02"), EUR(10)) },
			wantErr: true,
		},
		{
			name: "dividends",
			tx: func() *AccountTransaction {
				tx := NewAccountTransaction(Dividends, on("2013-01-02"), EUR(10))
				tx.Security = sap()
				return tx
			},
		},
		{
			name:    "delivery is not an account type",
			tx:      func() *AccountTransaction { return NewAccountTransaction(DeliveryInbound, on("2013-01-02"), EUR(10)) },
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tx().Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewAccountTransactionMagnitude(t *testing.T) {
	tx := NewAccountTransaction(Removal, on("2013-01-02"), EUR(-50))
	if !tx.Amount.Equal(EUR(50)) {
		t.Errorf("amount = %#v, want EUR 50", tx.Amount)
	}
	if tx.UUID == "" {
		t.Errorf("no uuid")
	}
}

func TestPortfolioTransactionValidate(t *testing.T) {
	tx := NewPortfolioTransaction(DeliveryInbound, on("2013-01-02"), EUR(1000), nil, SharesOf(10))
	var missing *MissingSecurityReferenceError
	if err := tx.Validate(); !errors.As(err, &missing) || missing.Type != DeliveryInbound {
		t.Errorf("Validate() = %v, want a missing security reference", err)
	}
	tx.Security = sap()
	if err := tx.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	tx.Shares = 0
	if err := tx.Validate(); err == nil {
		t.Errorf("Validate() without shares succeeded")
	}
}

func TestGrossValue(t *testing.T) {
	tx := NewPortfolioTransaction(Sell, on("2013-01-02"), EUR(980), sap(), SharesOf(10))
	tx.AddUnit(Unit{Type: Tax, Amount: EUR(15)})
	tx.AddUnit(Unit{Type: Fee, Amount: EUR(4.5)})
	tx.AddUnit(Unit{Type: Fee, Amount: EUR(0.5)})
	if got := tx.GrossValue(); !got.Equal(EUR(1000)) {
		t.Errorf("GrossValue() = %#v, want EUR 1000", got)
	}
	if got := tx.UnitSum(Fee); !got.Equal(EUR(5)) {
		t.Errorf("UnitSum(Fee) = %#v, want EUR 5", got)
	}
	if _, ok := tx.Unit(GrossValue); ok {
		t.Errorf("Unit(GrossValue) found a unit")
	}
	if u, ok := tx.Unit(Tax); !ok || !u.Amount.Equal(EUR(15)) {
		t.Errorf("Unit(Tax) = %v, %v", u, ok)
	}
}
