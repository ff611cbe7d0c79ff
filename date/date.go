// Package date provides day-granularity dates, optional time of day, and
// the date patterns statements are written in.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the day of t in t's location.
func Of(t time.Time) Date { return New(t.Date()) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Year() int              { return d.y }
func (d Date) Month() time.Month      { return d.m }
func (d Date) Day() int               { return d.d }
func (d Date) Add(days int) Date      { return New(d.y, d.m, d.d+days) }
func (d Date) Time() time.Time        { return d.time() }
func (d Date) String() string         { return d.time().Format(DateFormat) }
func (d Date) Format(l string) string { return d.time().Format(l) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}
func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// DateTime is a Date with an optional time of day.
type DateTime struct {
	Date
	hour, min, sec int
}

// At returns d at the given time of day.
func At(d Date, hour, min, sec int) DateTime { return DateTime{Date: d, hour: hour, min: min, sec: sec} }

// Midnight returns d at 00:00.
func Midnight(d Date) DateTime { return DateTime{Date: d} }

func (t DateTime) Hour() int   { return t.hour }
func (t DateTime) Minute() int { return t.min }
func (t DateTime) Second() int { return t.sec }

// String formats t as 2006-01-02T15:04, with seconds only when set.
func (t DateTime) String() string {
	s := fmt.Sprintf("%sT%02d:%02d", t.Date, t.hour, t.min)
	if t.sec != 0 {
		s += fmt.Sprintf(":%02d", t.sec)
	}
	return s
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	str := t.String()
	return json.Marshal(&str)
}

func (t *DateTime) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := ParseDateTime(str)
	if err != nil {
		return err
	}
	*t = d
	return nil
}

// ParseDateTime parses the output of DateTime.String.
func ParseDateTime(str string) (DateTime, error) {
	for _, l := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", DateFormat} {
		if on, err := time.Parse(l, str); err == nil {
			return At(New(on.Date()), on.Hour(), on.Minute(), on.Second()), nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date time %q", str)
}

// clockLayouts are the accepted time of day notations.
var clockLayouts = []string{"15:04:05", "15:04", "3:04 PM", "15.04"}

// ParseClock parses a time of day such as "10:00" or "11:00:00".
func ParseClock(str string) (hour, min, sec int, err error) {
	for _, l := range clockLayouts {
		on, perr := time.Parse(l, str)
		if perr == nil {
			return on.Hour(), on.Minute(), on.Second(), nil
		}
	}
	return 0, 0, 0, fmt.Errorf("invalid time of day %q", str)
}
