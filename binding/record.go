package binding

import (
	"errors"
	"strings"

	"github.com/etnz/statements"
	"github.com/etnz/statements/date"
	"github.com/etnz/statements/field"
	"github.com/shopspring/decimal"
)

// Record is one raw input record seen through a binding.
type Record struct {
	Index  int    // position of the record in its source
	Source string // origin label, e.g. "file.csv:12"
	Body   string // full text of the record, searched by text finders

	binding *Binding
	values  map[string]string
}

// Bound reports whether the field code is bound in the record's binding.
func (r Record) Bound(code string) bool { return r.binding != nil && r.binding.Bound(code) }

// Has reports whether the field code has a non blank value.
func (r Record) Has(code string) bool { return r.values[field.Key(code)] != "" }

// Text returns the trimmed raw value of the field code, blank when absent.
func (r Record) Text(code string) string { return r.values[field.Key(code)] }

// Parse parses the value of code with its column format. ok is false when the
// value is blank or the field is not bound. Errors name the field.
func (r Record) Parse(code string) (v any, ok bool, err error) {
	raw := r.Text(code)
	if raw == "" || r.binding == nil {
		return nil, false, nil
	}
	c, bound := r.binding.Column(code)
	if !bound {
		return nil, false, nil
	}
	v, err = c.Format.Parse(raw)
	if err != nil {
		return nil, false, withField(err, c.Field.Code(), raw)
	}
	return v, true, nil
}

// Date returns the date value of code.
func (r Record) Date(code string) (date.Date, bool, error) {
	v, ok, err := r.Parse(code)
	if !ok {
		return date.Date{}, false, err
	}
	d, isDate := v.(date.Date)
	if !isDate {
		return date.Date{}, false, &statements.FormatError{Field: code, Value: r.Text(code), Err: errNotDate}
	}
	return d, true, nil
}

// Amount returns the decimal value of code.
func (r Record) Amount(code string) (decimal.Decimal, bool, error) {
	v, ok, err := r.Parse(code)
	if !ok {
		return decimal.Zero, false, err
	}
	d, isDecimal := v.(decimal.Decimal)
	if !isDecimal {
		return decimal.Zero, false, &statements.FormatError{Field: code, Value: r.Text(code), Err: errNotAmount}
	}
	return d, true, nil
}

// Type returns the transaction type of code.
func (r Record) Type(code string) (statements.Type, bool, error) {
	v, ok, err := r.Parse(code)
	if !ok {
		return "", false, err
	}
	t, isType := v.(statements.Type)
	if !isType {
		return "", false, &statements.FormatError{Field: code, Value: r.Text(code), Err: errNotType}
	}
	return t, true, nil
}

// Clock returns the time of day of code. An unparsable time is ignored.
func (r Record) Clock(code string) (field.Clock, bool) {
	v, ok, err := r.Parse(code)
	if !ok || err != nil {
		return field.Clock{}, false
	}
	c, isClock := v.(field.Clock)
	return c, isClock
}

// Mandatory returns a *statements.MissingMandatoryFieldError when code is blank.
func (r Record) Mandatory(code string) error {
	if r.Has(code) {
		return nil
	}
	return &statements.MissingMandatoryFieldError{Field: code}
}

var (
	errNotDate   = errors.New("not a date")
	errNotAmount = errors.New("not an amount")
	errNotType   = errors.New("not a transaction type")
)

// withField fills the field name of taxonomy errors, other errors become a FormatError.
func withField(err error, code, raw string) error {
	var ferr *statements.FormatError
	if errors.As(err, &ferr) {
		ferr.Field = code
		return ferr
	}
	var uerr *statements.UnmappedEnumValueError
	if errors.As(err, &uerr) {
		uerr.Field = code
		return uerr
	}
	return &statements.FormatError{Field: code, Value: raw, Err: err}
}

func trim(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
}

func join(raw []string) string { return strings.Join(raw, " ") }
