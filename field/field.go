// Package field defines the typed fields of a statement record and the
// formats a raw string can be parsed with.
package field

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// Format turns a raw string into a typed value.
type Format interface {
	Parse(raw string) (any, error)
	String() string
}

// Field is one target attribute of a record.
type Field interface {
	// Code is the stable machine name, used for header matching and layout files.
	Code() string
	// Name is the human label.
	Name() string
	Optional() bool
	// Formats returns the ranked candidate formats, the first one is the default.
	Formats() []Format
	// Guess returns the candidate that best fits a sample value.
	Guess(sample string) Format
}

// Field codes shared by the extractors.
const (
	Date          = "date"
	Time          = "time"
	ISIN          = "isin"
	Ticker        = "ticker"
	WKN           = "wkn"
	SEDOL         = "sedol"
	Value         = "value"
	Currency      = "currency"
	Type          = "type"
	SecurityName  = "name"
	Shares        = "shares"
	Note          = "note"
	Taxes         = "taxes"
	Fees          = "fees"
	Account       = "account"
	Account2nd    = "account2nd"
	Portfolio     = "portfolio"
	Portfolio2nd  = "portfolio2nd"
	Gross         = "gross"
	CurrencyGross = "currencyGross"
	ExchangeRate  = "exchangeRate"
)

type base struct {
	code     string
	name     string
	optional bool
}

func (b base) Code() string   { return b.code }
func (b base) Name() string   { return b.name }
func (b base) Optional() bool { return b.optional }

// Key normalizes a field code so that "currencyGross", "currency_gross" and
// "Currency Gross" compare equal.
func Key(code string) string { return strings.ToLower(strcase.ToLowerCamel(strings.TrimSpace(code))) }

// Lookup returns the field whose code matches code once normalized.
func Lookup(fields []Field, code string) (Field, bool) {
	k := Key(code)
	for _, f := range fields {
		if Key(f.Code()) == k {
			return f, true
		}
	}
	return nil, false
}

// FindFormat returns the candidate of f whose label is label.
func FindFormat(f Field, label string) (Format, bool) {
	for _, format := range f.Formats() {
		if format.String() == label {
			return format, true
		}
	}
	return nil, false
}

// plain is the format of text fields.
type plain struct{}

func (plain) Parse(raw string) (any, error) { return strings.TrimSpace(raw), nil }
func (plain) String() string                { return "text" }

// Plain returns raw values trimmed.
var Plain Format = plain{}

// TextField is a free text field.
type TextField struct{ base }

// NewText returns a text field.
func NewText(code, name string, optional bool) *TextField {
	return &TextField{base{code, name, optional}}
}

func (f *TextField) Formats() []Format   { return []Format{Plain} }
func (f *TextField) Guess(string) Format { return Plain }
