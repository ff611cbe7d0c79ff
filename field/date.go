package field

import (
	"github.com/etnz/statements/date"
)

// DateFormat parses strictly with one date pattern.
type DateFormat struct{ date.Pattern }

func (f DateFormat) Parse(raw string) (any, error) { return f.Pattern.Parse(raw) }

// LooseDate is the permissive multi-locale format used for dates found in statement text.
var LooseDate Format = looseDate{}

type looseDate struct{}

func (looseDate) Parse(raw string) (any, error) { return date.ParseLoose(raw) }
func (looseDate) String() string                { return "loose" }

// DateField is a calendar date.
type DateField struct{ base }

// NewDate returns a date field.
func NewDate(code, name string, optional bool) *DateField {
	return &DateField{base{code, name, optional}}
}

// Formats returns one strict format per supported pattern, plus the loose format last.
func (f *DateField) Formats() []Format {
	formats := make([]Format, 0, len(date.Patterns)+1)
	for _, p := range date.Patterns {
		formats = append(formats, DateFormat{p})
	}
	return append(formats, LooseDate)
}

// Guess returns the first pattern that parses sample.
func (f *DateField) Guess(sample string) Format { return DateFormat{date.GuessPattern(sample)} }

// Clock is a time of day.
type Clock struct{ Hour, Minute, Second int }

type clockFormat struct{}

func (clockFormat) Parse(raw string) (any, error) {
	h, m, s, err := date.ParseClock(raw)
	if err != nil {
		return nil, err
	}
	return Clock{h, m, s}, nil
}
func (clockFormat) String() string { return "HH:mm[:ss]" }

// TimeField is an optional time of day complementing a date.
type TimeField struct{ base }

// NewTime returns a time field.
func NewTime(code, name string) *TimeField { return &TimeField{base{code, name, true}} }

func (f *TimeField) Formats() []Format   { return []Format{clockFormat{}} }
func (f *TimeField) Guess(string) Format { return clockFormat{} }
