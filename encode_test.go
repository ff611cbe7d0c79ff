package statements

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

func TestEncodeItems(t *testing.T) {
	s := sap()

	deposit := NewAccountTransaction(Deposit, on("2013-01-02"), EUR(100))
	deposit.UUID = "tx-1"
	deposit.Source = "konto.csv:2"

	buy := NewBuySellEntry(Buy, on("2013-01-03"), EUR(1000), s, SharesOf(10))
	buy.Account.UUID, buy.Portfolio.UUID = "cash-1", "sec-1"
	forex := USD(1300)
	buy.Portfolio.AddUnit(Unit{Type: GrossValue, Amount: EUR(1000), Forex: &forex, Rate: decimal.RequireFromString("0.7692")})

	items := []Item{
		&SecurityItem{Security: s},
		&TransactionItem{Transaction: deposit, Booking: Labels{Account: "Girokonto"}},
		&BuySellItem{Entry: buy},
		&NonImportableItem{Type: Deposit, Reason: "amount is zero", Origin: "konto.csv:3"},
	}

	var buf bytes.Buffer
	if err := EncodeItems(&buf, items); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`{"kind":"security","uuid":"sap","name":"SAP SE","isin":"DE0007164600","wkn":"716460","currency":"EUR"}`,
		`{"kind":"transaction","leg":"account","uuid":"tx-1","type":"DEPOSIT","date":"2013-01-02T00:00","amount":{"amount":"100.00","currency":"EUR"},"source":"konto.csv:2","account":"Girokonto"}`,
		`{"kind":"buysell","cash":{"uuid":"cash-1","type":"BUY","date":"2013-01-03T00:00","amount":{"amount":"1000.00","currency":"EUR"},"security":"sap","shares":"10"},` +
			`"securities":{"uuid":"sec-1","type":"BUY","date":"2013-01-03T00:00","amount":{"amount":"1000.00","currency":"EUR"},"security":"sap","shares":"10",` +
			`"units":[{"type":"GROSS_VALUE","amount":{"amount":"1000.00","currency":"EUR"},"forex":{"amount":"1300.00","currency":"USD"},"rate":"0.7692"}]}}`,
		`{"kind":"non-importable","type":"DEPOSIT","reason":"amount is zero","source":"konto.csv:3"}`,
	}, "\n") + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSecurities(t *testing.T) {
	input := `{"uuid":"sap","name":"SAP SE","isin":"DE0007164600","currency":"EUR"}

{"name":"Apple","isin":" us0378331005 ","wkn":"865985","ticker":"AAPL","currency":"USD"}
`
	got, err := DecodeSecurities(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d securities, want 2", len(got))
	}
	if got[1].UUID == "" {
		t.Errorf("no uuid assigned")
	}
	got[1].UUID = "apple"
	want := []*Security{
		{UUID: "sap", Name: "SAP SE", ISIN: "DE0007164600", Currency: "EUR"},
		{UUID: "apple", Name: "Apple", ISIN: "US0378331005", WKN: "865985", Ticker: "AAPL", Currency: "USD"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DecodeSecurities() mismatch (-want +got):\n%s", diff)
	}

	if _, err := DecodeSecurities(strings.NewReader("{\n")); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Errorf("DecodeSecurities() = %v, want an error on line 1", err)
	}
}

func TestEncodeSecurities(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSecurities(&buf, []*Security{sap()}); err != nil {
		t.Fatal(err)
	}
	round, err := DecodeSecurities(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]*Security{sap()}, round); diff != "" {
		t.Errorf("securities changed (-want +got):\n%s", diff)
	}
}

func TestObject(t *testing.T) {
	testCases := []struct {
		name  string
		build func(o *object)
		want  string
	}{
		{
			name:  "empty",
			build: func(o *object) {},
			want:  `{}`,
		},
		{
			name: "insertion order",
			build: func(o *object) {
				o.set("kind", KindTransaction)
				o.set("type", Deposit)
				o.set("amount", EUR(12.5))
			},
			want: `{"kind":"transaction","type":"DEPOSIT","amount":{"amount":"12.50","currency":"EUR"}}`,
		},
		{
			name: "zero values omitted",
			build: func(o *object) {
				o.set("shares", 0)
				o.omitZero("note", "")
				o.omitZero("units", []Unit(nil))
				o.omitZero("source", "umsaetze.csv:2")
			},
			want: `{"shares":0,"source":"umsaetze.csv:2"}`,
		},
		{
			name: "inlined members",
			build: func(o *object) {
				o.set("kind", KindSecurity)
				o.inline(&Security{UUID: "sap", Name: "SAP SE"})
				o.inline(struct{}{})
				o.set("n", 2)
			},
			want: `{"kind":"security","uuid":"sap","name":"SAP SE","n":2}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var o object
			tc.build(&o)
			got, err := o.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON() failed: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestObjectError(t *testing.T) {
	var o object
	o.set("bad", make(chan int))
	o.set("good", 1)
	if _, err := o.MarshalJSON(); err == nil {
		t.Error("MarshalJSON() succeeded after a value failed to encode")
	}

	o = object{}
	o.inline([]int{1})
	if _, err := o.MarshalJSON(); err == nil {
		t.Error("MarshalJSON() succeeded after inlining a list")
	}
}
