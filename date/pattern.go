package date

import (
	"fmt"
	"strings"
	"time"
)

// Pattern is a strict date notation found in statement exports.
type Pattern struct {
	Label  string // notation shown to users, e.g. "dd.MM.yyyy"
	Layout string // time.Parse layout
}

func (p Pattern) String() string { return p.Label }

// Parse parses s strictly according to p.
func (p Pattern) Parse(s string) (Date, error) {
	layout, value := p.Layout, s
	if strings.Contains(layout, "Jan") {
		value = englishMonths(value)
	}
	on, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q", s, p.Label)
	}
	return New(on.Date()), nil
}

// Format formats d according to p.
func (p Pattern) Format(d Date) string { return d.Format(p.Layout) }

// Patterns is the ranked list of supported notations. The first one is the default.
var Patterns = []Pattern{
	{"yyyy-MM-dd", "2006-01-02"},
	{"yyyy/MM/dd", "2006/01/02"},
	{"yyyyMMdd", "20060102"},
	{"dd.MM.yyyy", "02.01.2006"},
	{"dd.MM.yy", "02.01.06"},
	{"dd/MM/yyyy", "02/01/2006"},
	{"dd/MM/yy", "02/01/06"},
	{"dd-MM-yyyy", "02-01-2006"},
	{"dd-MM-yy", "02-01-06"},
	{"MM/dd/yyyy", "01/02/2006"},
	{"MM/dd/yy", "01/02/06"},
	{"MM-dd-yy", "01-02-06"},
	{"MM-dd-yyyy", "01-02-2006"},
	{"dd-MMM-yyyy", "02-Jan-2006"},
	{"dd.MMM.yyyy", "02.Jan.2006"},
	{"d. MMMM yyyy", "2. January 2006"},
}

// LookupPattern returns the pattern with the given label.
func LookupPattern(label string) (Pattern, bool) {
	for _, p := range Patterns {
		if p.Label == label {
			return p, true
		}
	}
	return Pattern{}, false
}

// GuessPattern returns the first pattern that parses sample, or the default one.
func GuessPattern(sample string) Pattern {
	sample = strings.TrimSpace(sample)
	for _, p := range Patterns {
		if _, err := p.Parse(sample); err == nil {
			return p
		}
	}
	return Patterns[0]
}

// germanMonths maps German month names and abbreviations to English ones.
// Longer names come first so that "März" is not caught by "Mär", and English
// names map to themselves so that "January" is not caught by "Januar".
var germanMonths = strings.NewReplacer(
	"January", "January", "February", "February",
	"Januar", "January", "Februar", "February", "März", "March", "Mai", "May",
	"Juni", "June", "Juli", "July", "Oktober", "October", "Dezember", "December",
	"Jän", "Jan", "Mär", "Mar", "Mrz", "Mar", "Okt", "Oct", "Dez", "Dec",
)

func englishMonths(s string) string { return germanMonths.Replace(s) }

// looseLayouts are tried in order by ParseLoose.
var looseLayouts = []string{
	"2006-1-2",
	"2.1.2006",
	"2.1.06",
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2. January 2006",
	"2 January 2006",
	"2. Jan 2006",
	"2 Jan 2006",
	"2-Jan-2006",
	"2.Jan.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"20060102",
}

// ParseLoose parses a date found in statement text, accepting single digit
// parts and German or English month names. Day-first is assumed for numeric dates.
func ParseLoose(s string) (Date, error) {
	value := englishMonths(strings.Join(strings.Fields(s), " "))
	for _, l := range looseLayouts {
		if on, err := time.Parse(l, value); err == nil {
			return New(on.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}
