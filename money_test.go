package statements

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyOf(t *testing.T) {
	testCases := []struct {
		name     string
		money    Money
		want     int64
		currency string
	}{
		{"half up", MoneyOf(12.345, "EUR"), 1235, "EUR"},
		{"half away from zero", MoneyOf(-12.345, "EUR"), -1235, "EUR"},
		{"no minor unit", MoneyOf(1234.5, "JPY"), 1235, "JPY"},
		{"three digits", MoneyOf(1.2345, "BHD"), 1235, "BHD"},
		{"unknown currency", MoneyOf(1.005, "XYZ"), 101, "XYZ"},
		{"decimal", MoneyOf(decimal.RequireFromString("53.525"), "CAD"), 5353, "CAD"},
		{"int", MoneyOf(10, "USD"), 1000, "USD"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.money.Amount() != tc.want || tc.money.Currency() != tc.currency {
				t.Errorf("got %#v, want %d %s", tc.money, tc.want, tc.currency)
			}
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	if got := EUR(100).Add(EUR(7.4)).Sub(EUR(0.4)); !got.Equal(EUR(107)) {
		t.Errorf("100 + 7.40 - 0.40 = %#v", got)
	}
	if got := EUR(-3).Abs(); !got.Equal(EUR(3)) {
		t.Errorf("Abs(-3) = %#v", got)
	}
	if got := M(5, "").Add(EUR(1)); got.Currency() != "EUR" {
		t.Errorf("a money without currency adopts the other one, got %#v", got)
	}
	if !EUR(-1).IsNegative() || !EUR(1).IsPositive() || !EUR(0).IsZero() {
		t.Errorf("sign predicates are wrong")
	}
	if got := M(1235, "BHD").Decimal().String(); got != "1.235" {
		t.Errorf("Decimal() = %s, want 1.235", got)
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("adding EUR and USD did not panic")
		}
	}()
	EUR(1).Add(USD(1))
}

func TestMoneyString(t *testing.T) {
	if got := USD(1000).String(); got != "$1,000.00" {
		t.Errorf("String() = %q, want $1,000.00", got)
	}
	if got := M(1250, "").String(); got != "12.50" {
		t.Errorf("String() = %q, want 12.50", got)
	}
}

func TestMoneyMarshalJSON(t *testing.T) {
	got, err := MoneyOf(8.8, "EUR").MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"amount":"8.80","currency":"EUR"}`; string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestKnownCurrency(t *testing.T) {
	for code, known := range map[string]bool{"EUR": true, "CHF": true, "XYZ": false, "": false} {
		if KnownCurrency(code) != known {
			t.Errorf("KnownCurrency(%q) = %v, want %v", code, !known, known)
		}
	}
}

func TestSharesOf(t *testing.T) {
	testCases := []struct {
		value decimal.Decimal
		want  string
	}{
		{decimal.RequireFromString("1978"), "1978"},
		{decimal.RequireFromString("0.123456789"), "0.12345679"},
		{decimal.RequireFromString("-2.5"), "-2.5"},
	}
	for _, tc := range testCases {
		if got := SharesOf(tc.value).String(); got != tc.want {
			t.Errorf("SharesOf(%s) = %s, want %s", tc.value, got, tc.want)
		}
	}
	if got := SharesOf(-2.5).Abs(); got != SharesOf(2.5) {
		t.Errorf("Abs(-2.5) = %s", got)
	}
}
