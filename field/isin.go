package field

import (
	"errors"
	"strings"

	"github.com/etnz/statements"
)

type isinFormat struct{}

// ISINFormat validates structure and check digit of an ISIN.
var ISINFormat Format = isinFormat{}

func (isinFormat) String() string { return "ISIN" }

func (isinFormat) Parse(raw string) (any, error) {
	isin := statements.NormalizeIdentifier(raw)
	if err := statements.ValidateISIN(isin); err != nil {
		return nil, &statements.FormatError{Value: raw, Err: err}
	}
	return isin, nil
}

// ISINFinder extracts from free text the ISIN of a known security.
type ISINFinder struct {
	known map[string]bool
}

var errNoKnownISIN = errors.New("no ISIN of a known security")

func (f *ISINFinder) String() string { return "ISIN (search in text)" }

// Parse returns the first substring of raw that is a valid ISIN of a known security.
func (f *ISINFinder) Parse(raw string) (any, error) {
	text := strings.ToUpper(strings.TrimSpace(raw))
	for _, candidate := range statements.ISINPattern.FindAllString(text, -1) {
		if statements.ValidateISIN(candidate) != nil {
			continue
		}
		if f.known[candidate] {
			return candidate, nil
		}
	}
	return nil, &statements.FormatError{Value: raw, Err: errNoKnownISIN}
}

// GuessISIN returns a finder over the ISINs of securities, or false when none has a valid ISIN.
func GuessISIN(securities []*statements.Security) (*ISINFinder, bool) {
	known := make(map[string]bool)
	for _, s := range securities {
		isin := statements.NormalizeIdentifier(s.ISIN)
		if statements.ValidateISIN(isin) == nil {
			known[isin] = true
		}
	}
	if len(known) == 0 {
		return nil, false
	}
	return &ISINFinder{known: known}, true
}

// ISINField is an ISIN column. When the column is blank the field is absent, not invalid.
type ISINField struct{ base }

// NewISIN returns an ISIN field.
func NewISIN(code, name string, optional bool) *ISINField {
	return &ISINField{base{code, name, optional}}
}

func (f *ISINField) Formats() []Format   { return []Format{ISINFormat} }
func (f *ISINField) Guess(string) Format { return ISINFormat }
