package binding

import (
	"strings"
	"unicode"

	"github.com/etnz/statements/field"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// headerAliases are the German column titles of common exports, by field code.
var headerAliases = map[string][]string{
	field.Date:          {"Datum", "Buchungstag", "Valuta"},
	field.Time:          {"Uhrzeit", "Zeit"},
	field.Ticker:        {"Ticker-Symbol", "Symbol"},
	field.Value:         {"Wert", "Betrag", "Amount"},
	field.Currency:      {"Buchungswährung", "Währung"},
	field.Type:          {"Typ", "Buchungsart"},
	field.SecurityName:  {"Wertpapiername", "Wertpapier", "Security"},
	field.Shares:        {"Stück", "Anzahl", "Quantity"},
	field.Note:          {"Notiz", "Buchungstext", "Verwendungszweck"},
	field.Taxes:         {"Steuern", "Steuer", "Tax"},
	field.Fees:          {"Gebühren", "Gebühr", "Fee"},
	field.Account:       {"Konto", "Referenzkonto"},
	field.Account2nd:    {"Gegenkonto"},
	field.Portfolio:     {"Depot"},
	field.Portfolio2nd:  {"Gegendepot"},
	field.Gross:         {"Bruttobetrag", "Brutto"},
	field.CurrencyGross: {"Währung Bruttobetrag"},
	field.ExchangeRate:  {"Wechselkurs", "Devisenkurs"},
}

var (
	upper   = cases.Upper(language.Und)
	umlauts = strings.NewReplacer("Ä", "AE", "Ö", "OE", "Ü", "UE", "ß", "SS")
)

// normalize folds a header title for comparison: upper-cased, umlauts
// transliterated, separators and blanks removed.
func normalize(s string) string {
	s = umlauts.Replace(upper.String(strings.TrimSpace(s)))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '_' || r == '-' || r == '.' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, s)
}

// candidates returns the normalized titles a field is recognized by.
func candidates(f field.Field) []string {
	titles := []string{normalize(f.Code()), normalize(f.Name())}
	for _, alias := range headerAliases[f.Code()] {
		titles = append(titles, normalize(alias))
	}
	return titles
}

// FromHeader binds each header cell to the first field, not yet bound, whose
// code, name or known title matches it. Unmatched columns stay unbound.
// Formats are guessed from the first non blank value of each column in rows.
func FromHeader(header []string, rows [][]string, fields []field.Field) []*Column {
	titles := make([][]string, len(fields))
	for i, f := range fields {
		titles[i] = candidates(f)
	}
	bound := make([]bool, len(fields))
	columns := make([]*Column, len(header))
	for i, h := range header {
		columns[i] = &Column{Index: i, Label: trim(h)}
		key := normalize(trim(h))
		if key == "" {
			continue
		}
	search:
		for j, f := range fields {
			if bound[j] {
				continue
			}
			for _, t := range titles[j] {
				if t == key {
					columns[i].SetField(f)
					bound[j] = true
					break search
				}
			}
		}
	}
	GuessFormats(columns, rows)
	return columns
}
