package statements

import "testing"

func TestBuySellEntry(t *testing.T) {
	s := sap()
	e := NewBuySellEntry(Buy, on("2013-01-02"), EUR(-1000.5), s, SharesOf(-10))
	e.SetNote("Kauf SAP")
	e.SetSource("depot.csv:2")

	if e.Account.Security != s || e.Portfolio.Security != s {
		t.Errorf("both legs must share the security")
	}
	if e.Account.Shares != SharesOf(10) || e.Portfolio.Shares != SharesOf(10) {
		t.Errorf("shares = %s/%s, want 10", e.Account.Shares, e.Portfolio.Shares)
	}
	if !e.Account.Amount.Equal(EUR(1000.5)) {
		t.Errorf("amount = %#v, want EUR 1000.50", e.Account.Amount)
	}
	if e.Account.Note != "Kauf SAP" || e.Portfolio.Source != "depot.csv:2" {
		t.Errorf("note or source not set on both legs")
	}
	if err := e.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	e.Account.Amount = EUR(999)
	if err := e.Validate(); err == nil {
		t.Errorf("Validate() accepted legs with different amounts")
	}
}

func TestBuySellEntryType(t *testing.T) {
	e := NewBuySellEntry(DeliveryInbound, on("2013-01-02"), EUR(10), sap(), SharesOf(1))
	if err := e.Validate(); err == nil {
		t.Errorf("Validate() accepted a delivery")
	}
}

func TestAccountTransferEntry(t *testing.T) {
	e := NewAccountTransferEntry(on("2013-01-02"), EUR(-100), USD(130))
	e.SetSource("konto.csv:5")
	if e.Source.Type != TransferOut || e.Target.Type != TransferIn {
		t.Errorf("types = %s/%s", e.Source.Type, e.Target.Type)
	}
	if !e.Source.Amount.Equal(EUR(100)) || !e.Target.Amount.Equal(USD(130)) {
		t.Errorf("amounts = %#v/%#v", e.Source.Amount, e.Target.Amount)
	}
	if e.Target.Source != "konto.csv:5" {
		t.Errorf("source not set on the target leg")
	}
	if err := e.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestPortfolioTransferEntry(t *testing.T) {
	e := NewPortfolioTransferEntry(on("2013-01-02"), EUR(500), sap(), SharesOf(5))
	if err := e.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	e.Target.Security = nil
	if err := e.Validate(); err == nil {
		t.Errorf("Validate() accepted a target without security")
	}
}

func TestTransactions(t *testing.T) {
	e := NewBuySellEntry(Sell, on("2013-01-02"), EUR(10), sap(), SharesOf(1))
	txs := Transactions(&BuySellItem{Entry: e})
	if len(txs) != 2 || txs[0].Kind() != "account" || txs[1].Kind() != "portfolio" {
		t.Errorf("Transactions() = %v, want the cash leg first", txs)
	}
	if got := Transactions(&NonImportableItem{Reason: "zero"}); got != nil {
		t.Errorf("Transactions(non-importable) = %v", got)
	}
}
