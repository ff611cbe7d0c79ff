package binding

import (
	"errors"
	"testing"

	"github.com/etnz/statements"
	"github.com/etnz/statements/field"
)

const comdirect = `
name: comdirect
extractor: account
delimiter: ";"
skipLines: 4
decimal: ","
datePattern: dd.MM.yyyy
columns:
  - {index: 0, field: date}
  - {index: 2, field: type}
  - {index: 3, field: note}
  - {index: 4, field: value}
  - {index: 5, field: exchange_rate, format: "."}
enums:
  type: "FEES_REFUND=Rückvergütung;DEPOSIT=Gutschrift"
`

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout([]byte(comdirect))
	if err != nil {
		t.Fatal(err)
	}
	if l.Currency != "EUR" {
		t.Errorf("Currency = %q, want the default EUR", l.Currency)
	}
	if l.Delimiter != ";" || l.SkipLines != 4 {
		t.Errorf("Delimiter, SkipLines = %q, %d", l.Delimiter, l.SkipLines)
	}

	fields := field.AccountFields()
	b, err := l.Bind(fields, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		field.Date:         "dd.MM.yyyy",
		field.Value:        "0.000,00",
		field.ExchangeRate: "0,000.00",
		field.Note:         "text",
	}
	for code, label := range want {
		c, ok := b.Column(code)
		if !ok {
			t.Errorf("%s is not bound", code)
			continue
		}
		if c.Format.String() != label {
			t.Errorf("%s format = %s, want %s", code, c.Format, label)
		}
	}

	r := b.Record(0, "", []string{"24.12.2019", "", "Rückvergütung", "Gebühren", "4,50", "1.1"})
	typ, ok, err := r.Type(field.Type)
	if !ok || err != nil || typ != statements.FeesRefund {
		t.Errorf("Type() = %s %v %v, want FEES_REFUND", typ, ok, err)
	}
}

func TestParseLayoutEnvironment(t *testing.T) {
	t.Setenv("STMT_DECIMAL", ".")
	t.Setenv("STMT_EXTRACTOR", "portfolio")
	l, err := ParseLayout([]byte("name: broker\nheader: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Decimal != "." || l.Extractor != "portfolio" {
		t.Errorf("Decimal, Extractor = %q, %q", l.Decimal, l.Extractor)
	}
	b, err := l.Bind(field.PortfolioFields(), []string{"Date", "Shares", "Value"}, [][]string{{"2020-01-01", "1,5", "100,00"}})
	if err != nil {
		t.Fatal(err)
	}
	// the layout decimal wins over the guess
	c, _ := b.Column(field.Shares)
	if c.Format != field.EnglishAmount {
		t.Errorf("shares format = %s, want 0,000.00", c.Format)
	}
}

func TestParseLayoutErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"not yaml", "name: [unclosed"},
		{"unknown extractor", "name: x\nextractor: savings\n"},
		{"long delimiter", "name: x\ndelimiter: ';;'\n"},
		{"bad decimal", "name: x\ndecimal: ':'\n"},
		{"bad date pattern", "name: x\ndatePattern: yyyy.dd\n"},
		{"bad currency", "name: x\ncurrency: XYZ\n"},
		{"negative index", "name: x\ncolumns:\n  - {index: -1, field: date}\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseLayout([]byte(tc.yaml))
			var cerr *statements.ConfigError
			if !errors.As(err, &cerr) {
				t.Errorf("ParseLayout() = %v, want a ConfigError", err)
			}
		})
	}
}

func TestBindErrors(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"unknown field", "name: x\ncolumns:\n  - {index: 0, field: price}\n"},
		{"unknown format", "name: x\ncolumns:\n  - {index: 0, field: date, format: ddMMyyyy}\n"},
		{"enum on a text field", "name: x\nenums:\n  note: \"DEPOSIT=x\"\n"},
		{"unknown enum value", "name: x\nenums:\n  type: \"GIFT=x\"\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := ParseLayout([]byte(tc.yaml))
			if err != nil {
				t.Fatal(err)
			}
			_, err = l.Bind(field.AccountFields(), nil, nil)
			var cerr *statements.ConfigError
			if !errors.As(err, &cerr) {
				t.Errorf("Bind() = %v, want a ConfigError", err)
			}
		})
	}
}
