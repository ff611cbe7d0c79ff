package extract

import (
	"context"
	"testing"

	"github.com/etnz/statements"
	"github.com/etnz/statements/date"
	"github.com/etnz/statements/field"
	"github.com/shopspring/decimal"
)

// Portfolio columns: date, time, isin, ticker, wkn, name, value, currency,
// fees, taxes, gross, currencyGross, rate, shares, type, note.

func TestPortfolioDeliveryCreatesSecurity(t *testing.T) {
	row := []string{"2013-01-01", "", "DE0007164600", "SAP.DE", "", "SAP SE", "100", "EUR", "11", "10", "", "", "", "1,2", "DELIVERY_INBOUND", "Notiz"}
	ex := NewPortfolioExtractor(ledger())
	res := ex.Extract(context.Background(), records(t, ex, row))
	checkResult(t, res, 2, 0)

	si := only[*statements.SecurityItem](t, res.Items)
	tx := portfolio(t, res.Items)
	if tx.Type != statements.DeliveryInbound || tx.Security != si.Security {
		t.Errorf("got %s on %v", tx.Type, tx.Security)
	}
	if !tx.Amount.Equal(EUR(100)) || tx.Shares != statements.SharesOf(1.2) {
		t.Errorf("got %#v for %s shares", tx.Amount, tx.Shares)
	}
	if got := tx.UnitSum(statements.Fee); !got.Equal(EUR(11)) {
		t.Errorf("fee = %#v, want EUR 11", got)
	}
	if got := tx.UnitSum(statements.Tax); !got.Equal(EUR(10)) {
		t.Errorf("tax = %#v, want EUR 10", got)
	}
	if tx.Note != "Notiz" {
		t.Errorf("note = %q", tx.Note)
	}
}

func TestPortfolioTransfer(t *testing.T) {
	sap := &statements.Security{Name: "SAP SE", Ticker: "SAP.DE", Currency: "EUR"}
	row := []string{"2013-01-01", "", "", "SAP.DE", "", "", "100", "EUR", "11", "10", "", "", "", "1,2", "TRANSFER_IN", "Notiz"}
	ex := NewPortfolioExtractor(ledger(sap))
	res := ex.Extract(context.Background(), records(t, ex, row))
	checkResult(t, res, 1, 0)

	e := only[*statements.PortfolioTransferItem](t, res.Items).Entry
	for _, leg := range []*statements.PortfolioTransaction{e.Source, e.Target} {
		if leg.Security != sap || !leg.Amount.Equal(EUR(100)) || leg.Shares != statements.SharesOf(1.2) {
			t.Errorf("%s leg: %#v for %s shares of %v", leg.Type, leg.Amount, leg.Shares, leg.Security)
		}
		if len(leg.Units) != 0 {
			t.Errorf("%s leg carries units %v", leg.Type, leg.Units)
		}
	}
	if e.Source.Type != statements.TransferOut || e.Target.Type != statements.TransferIn {
		t.Errorf("types = %s/%s", e.Source.Type, e.Target.Type)
	}
}

func TestPortfolioBuy(t *testing.T) {
	sap := &statements.Security{Name: "SAP SE", Ticker: "SAP.DE", Currency: "EUR"}
	row := []string{"2013-01-02", "10:00", "", "SAP", "", "", "100", "EUR", "11", "", "", "", "", "1,9", "BUY", "Notiz"}
	ex := NewPortfolioExtractor(ledger(sap))
	res := ex.Extract(context.Background(), records(t, ex, row))
	checkResult(t, res, 1, 0)

	e := only[*statements.BuySellItem](t, res.Items).Entry
	if e.Portfolio.Security != sap || e.Account.Security != sap {
		t.Errorf("legs reference %v and %v", e.Portfolio.Security, e.Account.Security)
	}
	if want := date.At(date.New(2013, 1, 2), 10, 0, 0); e.Portfolio.DateTime != want {
		t.Errorf("date = %s, want %s", e.Portfolio.DateTime, want)
	}
	if got := e.Portfolio.UnitSum(statements.Fee); !got.Equal(EUR(11)) {
		t.Errorf("fee = %#v, want EUR 11", got)
	}
	if _, ok := e.Portfolio.Unit(statements.Tax); ok {
		t.Errorf("zero tax produced a unit")
	}
	if got := e.Portfolio.GrossValue(); !got.Equal(EUR(111)) {
		t.Errorf("gross = %#v, want EUR 111", got)
	}
}

func TestPortfolioTypeInference(t *testing.T) {
	sap := &statements.Security{Name: "SAP SE", ISIN: "DE0007164600", Currency: "EUR"}
	testCases := []struct {
		value string
		want  statements.Type
	}{
		{"-100", statements.Buy},
		{"100", statements.Sell},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			row := []string{"2013-01-01", "", "DE0007164600", "", "", "", tc.value, "EUR", "", "", "", "", "", "1", "", ""}
			ex := NewPortfolioExtractor(ledger(sap))
			res := ex.Extract(context.Background(), records(t, ex, row))
			checkResult(t, res, 1, 0)
			if got := only[*statements.BuySellItem](t, res.Items).Entry.Portfolio.Type; got != tc.want {
				t.Errorf("type = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPortfolioSecurityByName(t *testing.T) {
	row := []string{"2013-01-01", "", "", "", "", "SAP SE", "-100", "EUR", "", "", "", "", "", "1", "", ""}
	ex := NewPortfolioExtractor(ledger())
	res := ex.Extract(context.Background(), records(t, ex, row, row))
	checkResult(t, res, 3, 0)

	si := only[*statements.SecurityItem](t, res.Items)
	if si.Security.Name != "SAP SE" || si.Security.Currency != "EUR" {
		t.Errorf("security = %+v", *si.Security)
	}
}

func TestPortfolioSignedShares(t *testing.T) {
	row := []string{"2013-01-01", "", "DE0007164600", "", "", "SAP SE", "-100", "EUR", "", "", "", "", "", "+ 1,978", "BUY", ""}
	ex := NewPortfolioExtractor(ledger())
	res := ex.Extract(context.Background(), records(t, ex, row))
	checkResult(t, res, 2, 0)

	if _, ok := res.Items[0].(*statements.SecurityItem); !ok {
		t.Errorf("first item is %T, want the security", res.Items[0])
	}
	e := only[*statements.BuySellItem](t, res.Items).Entry
	if want := statements.SharesOf(decimal.RequireFromString("1.978")); e.Portfolio.Shares != want {
		t.Errorf("shares = %s, want %s", e.Portfolio.Shares, want)
	}
}

func TestPortfolioForexBuy(t *testing.T) {
	row := []string{"2015-09-15", "XX:XX", "LU0419741177", "", "", "", "56", "EUR", "0,14", "", "", "USD", "1,1194", "-0,701124", "BUY", ""}
	ex := NewPortfolioExtractor(ledger())
	res := ex.Extract(context.Background(), records(t, ex, row))
	checkResult(t, res, 2, 0)

	e := only[*statements.BuySellItem](t, res.Items).Entry
	if e.Portfolio.Security.Currency != "USD" {
		t.Errorf("security currency = %s, want USD", e.Portfolio.Security.Currency)
	}
	if want := date.Midnight(date.New(2015, 9, 15)); e.Portfolio.DateTime != want {
		t.Errorf("date = %s, want %s, an invalid time is ignored", e.Portfolio.DateTime, want)
	}
	u, ok := e.Portfolio.Unit(statements.GrossValue)
	if !ok {
		t.Fatal("no gross value unit")
	}
	if !u.Amount.Equal(EUR(56.14)) || !u.Forex.Equal(USD(62.84)) {
		t.Errorf("unit = %#v / %#v, want EUR 56.14 / USD 62.84", u.Amount, *u.Forex)
	}
	if want := decimal.RequireFromString("0.8933357156"); !u.Rate.Equal(want) {
		t.Errorf("rate = %s, want %s", u.Rate, want)
	}
}

func TestPortfolioRejections(t *testing.T) {
	testCases := []struct {
		name  string
		row   []string
		check func(error) bool
	}{
		{
			name:  "missing date",
			row:   []string{"", "", "DE0007164600", "", "", "", "100", "EUR", "", "", "", "", "", "1", "BUY", ""},
			check: missing(field.Date),
		},
		{
			name:  "missing value",
			row:   []string{"2013-01-01", "", "DE0007164600", "", "", "", "", "EUR", "", "", "", "", "", "1", "BUY", ""},
			check: missing(field.Value),
		},
		{
			name:  "missing security",
			row:   []string{"2013-01-01", "", "", "", "", "", "100", "EUR", "", "", "", "", "", "1", "BUY", ""},
			check: is[*statements.MissingSecurityReferenceError],
		},
		{
			name:  "missing shares",
			row:   []string{"2013-01-01", "", "DE0007164600", "", "", "", "100", "EUR", "", "", "", "", "", "", "BUY", ""},
			check: missing(field.Shares),
		},
		{
			name:  "account only type",
			row:   []string{"2013-01-01", "", "DE0007164600", "", "", "", "100", "EUR", "", "", "", "", "", "1", "DIVIDENDS", ""},
			check: is[*statements.UnmappedEnumValueError],
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ex := NewPortfolioExtractor(ledger())
			res := ex.Extract(context.Background(), records(t, ex, tc.row))
			checkResult(t, res, 0, 1)
			if !tc.check(res.Errors[0].Err) {
				t.Errorf("unexpected error %v", res.Errors[0].Err)
			}
		})
	}
}
