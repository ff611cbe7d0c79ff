package field

import (
	"strings"

	"github.com/etnz/statements"
	"github.com/etnz/statements/number"
	"github.com/shopspring/decimal"
)

// AmountFormat parses numbers with a given decimal separator.
type AmountFormat struct {
	Label string
	Sep   rune
}

func (f AmountFormat) String() string { return f.Label }

// Parse strips currency codes and unit suffixes and parses the number.
func (f AmountFormat) Parse(raw string) (any, error) {
	d, err := number.Parse(stripUnits(raw), f.Sep)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Amount formats, the first one is the default.
var (
	GermanAmount     = AmountFormat{"0.000,00", number.Comma}
	EnglishAmount    = AmountFormat{"0,000.00", number.Point}
	ApostropheAmount = AmountFormat{"0'000,00", number.Comma}
)

// unitSuffixes are removed from the end of an amount, longest first.
var unitSuffixes = []string{"Stück", "Stk.", "St.", "pcs", "%"}

// stripUnits removes a leading or trailing ISO currency code and a trailing unit.
func stripUnits(raw string) string {
	s := strings.TrimSpace(raw)
	for _, u := range unitSuffixes {
		if strings.HasSuffix(s, u) {
			s = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}
	if len(s) > 3 {
		if code := s[len(s)-3:]; isCode(code) {
			s = strings.TrimSpace(s[:len(s)-3])
		}
	}
	if len(s) > 3 {
		if code := s[:3]; isCode(code) {
			s = strings.TrimSpace(s[3:])
		}
	}
	return s
}

func isCode(s string) bool {
	return strings.ToUpper(s) == s && statements.KnownCurrency(s)
}

// AmountField is a decimal number: amounts, quantities, rates.
type AmountField struct{ base }

// NewAmount returns an amount field.
func NewAmount(code, name string, optional bool) *AmountField {
	return &AmountField{base{code, name, optional}}
}

func (f *AmountField) Formats() []Format {
	return []Format{GermanAmount, EnglishAmount, ApostropheAmount}
}

// Guess picks the format whose decimal separator occurs last in sample.
func (f *AmountField) Guess(sample string) Format {
	sample = stripUnits(sample)
	comma := strings.LastIndex(sample, ",")
	point := strings.LastIndex(sample, ".")
	switch {
	case point > comma:
		return EnglishAmount
	case comma > point && strings.Contains(sample, "'"):
		return ApostropheAmount
	default:
		return GermanAmount
	}
}

// AmountValue is a helper to parse raw with a format known to yield a decimal.
func AmountValue(f Format, raw string) (decimal.Decimal, error) {
	v, err := f.Parse(raw)
	if err != nil {
		return decimal.Zero, err
	}
	d, ok := v.(decimal.Decimal)
	if !ok {
		return decimal.Zero, &statements.FormatError{Value: raw, Err: errNotAmount}
	}
	return d, nil
}
