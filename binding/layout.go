package binding

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v6"
	"github.com/etnz/statements"
	"github.com/etnz/statements/date"
	"github.com/etnz/statements/field"
	"github.com/etnz/statements/number"
	"github.com/ghodss/yaml"
	"github.com/go-playground/validator/v10"
)

// Layout describes how the exports of one source are read.
type Layout struct {
	Name        string            `json:"name" validate:"required"`
	Extractor   string            `json:"extractor" validate:"required,oneof=account portfolio"`
	Currency    string            `json:"currency,omitempty" validate:"omitempty,len=3"`
	Delimiter   string            `json:"delimiter,omitempty" validate:"omitempty,len=1"`
	SkipLines   int               `json:"skipLines,omitempty" validate:"gte=0"`
	Header      bool              `json:"header,omitempty"`
	Decimal     string            `json:"decimal,omitempty"`
	DatePattern string            `json:"datePattern,omitempty"`
	Columns     []ColumnSpec      `json:"columns,omitempty" validate:"dive"`
	Enums       map[string]string `json:"enums,omitempty"`
	JSONRecords string            `json:"jsonRecords,omitempty"`
	JSONColumns []string          `json:"jsonColumns,omitempty"`
}

// ColumnSpec binds one column explicitly.
type ColumnSpec struct {
	Index  int    `json:"index" validate:"gte=0"`
	Field  string `json:"field" validate:"required"`
	Format string `json:"format,omitempty"`
}

// overrides are read from the environment and win over layout files.
type overrides struct {
	Decimal     string `env:"STMT_DECIMAL"`
	DatePattern string `env:"STMT_DATE_PATTERN"`
	Extractor   string `env:"STMT_EXTRACTOR"`
}

// DefaultLayout is the layout of a headerless, comma delimited, positional export.
func DefaultLayout() Layout {
	return Layout{
		Name:      "default",
		Extractor: "account",
		Currency:  "EUR",
		Delimiter: ",",
	}
}

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateStruct checks the validate tags of v. Failures are
// *statements.ConfigError naming the first invalid field by its json name.
func ValidateStruct(name string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		return statements.Configf("%s: %s failed on %s %s", name, e.Namespace(), e.Tag(), e.Param())
	}
	return &statements.ConfigError{Err: err}
}

// ParseLayout reads a YAML layout, completes it with the defaults and the
// environment overrides and validates it. Errors are *statements.ConfigError.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, &statements.ConfigError{Err: fmt.Errorf("layout: %w", err)}
	}
	if err := mergo.Merge(&l, DefaultLayout()); err != nil {
		return nil, &statements.ConfigError{Err: fmt.Errorf("layout defaults: %w", err)}
	}
	var o overrides
	if err := env.Parse(&o); err != nil {
		return nil, &statements.ConfigError{Err: fmt.Errorf("layout environment: %w", err)}
	}
	if o.Decimal != "" {
		l.Decimal = o.Decimal
	}
	if o.DatePattern != "" {
		l.DatePattern = o.DatePattern
	}
	if o.Extractor != "" {
		l.Extractor = o.Extractor
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// LoadLayout reads a layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read layout: %w", err)
	}
	return ParseLayout(data)
}

// Validate checks the layout. Errors are *statements.ConfigError.
func (l *Layout) Validate() error {
	if err := ValidateStruct("layout "+l.Name, l); err != nil {
		return err
	}
	if l.Decimal != "" {
		if _, ok := number.Separator(l.Decimal); !ok {
			return statements.Configf("layout %s: decimal %q, want ',' or '.'", l.Name, l.Decimal)
		}
	}
	if l.DatePattern != "" {
		if _, ok := date.LookupPattern(l.DatePattern); !ok {
			return statements.Configf("layout %s: unknown date pattern %q", l.Name, l.DatePattern)
		}
	}
	if l.Currency != "" && !statements.KnownCurrency(l.Currency) {
		return statements.Configf("layout %s: unknown currency %q", l.Name, l.Currency)
	}
	return nil
}

// AmountFormat returns the amount format selected by Decimal.
func (l *Layout) AmountFormat() (field.AmountFormat, bool) {
	sep, ok := number.Separator(l.Decimal)
	if !ok {
		return field.AmountFormat{}, false
	}
	if sep == number.Point {
		return field.EnglishAmount, true
	}
	return field.GermanAmount, true
}

// Bind binds fields to the columns of a file. Explicit columns win, then the
// header when the layout has one, then positions. The layout's decimal and
// date pattern replace guessed formats; enum mappings extend the fields'.
func (l *Layout) Bind(fields []field.Field, header []string, rows [][]string) (*Binding, error) {
	var columns []*Column
	switch {
	case len(l.Columns) > 0:
		var err error
		if columns, err = l.explicit(fields); err != nil {
			return nil, err
		}
	case l.Header:
		columns = FromHeader(header, rows, fields)
	default:
		n := len(fields)
		for _, row := range rows {
			n = max(n, len(row))
		}
		columns = Positional(fields, n)
		GuessFormats(columns, rows)
	}
	if err := l.Apply(fields, columns); err != nil {
		return nil, err
	}
	return New(columns)
}

// Apply applies the decimal, date pattern and enum settings of the layout to
// columns without an explicit format.
func (l *Layout) Apply(fields []field.Field, columns []*Column) error {
	explicit := make(map[int]bool)
	for _, spec := range l.Columns {
		if spec.Format != "" {
			explicit[spec.Index] = true
		}
	}
	amount, hasAmount := l.AmountFormat()
	pattern, hasPattern := date.LookupPattern(l.DatePattern)
	for _, c := range columns {
		if c.Field == nil || explicit[c.Index] {
			continue
		}
		switch c.Field.(type) {
		case *field.AmountField:
			if hasAmount {
				c.Format = amount
			}
		case *field.DateField:
			if hasPattern {
				c.Format = field.DateFormat{Pattern: pattern}
			}
		}
	}
	for code, text := range l.Enums {
		f, ok := field.Lookup(fields, code)
		if !ok {
			return statements.Configf("layout %s: enum mapping for unknown field %q", l.Name, code)
		}
		e, ok := f.(*field.EnumField[statements.Type])
		if !ok {
			return statements.Configf("layout %s: field %q is not an enumeration", l.Name, code)
		}
		if err := e.Mapping().Apply(text); err != nil {
			return err
		}
	}
	return nil
}

func (l *Layout) explicit(fields []field.Field) ([]*Column, error) {
	columns := make([]*Column, 0, len(l.Columns))
	for _, spec := range l.Columns {
		f, ok := field.Lookup(fields, spec.Field)
		if !ok {
			return nil, statements.Configf("layout %s: column %d: unknown field %q", l.Name, spec.Index, spec.Field)
		}
		c := &Column{Index: spec.Index}
		c.SetField(f)
		if spec.Format != "" {
			format, err := formatOf(f, spec.Format)
			if err != nil {
				return nil, statements.Configf("layout %s: column %d: %v", l.Name, spec.Index, err)
			}
			c.Format = format
		}
		columns = append(columns, c)
	}
	return columns, nil
}

// formatOf returns the candidate format of f named label. Amount fields also
// accept a bare separator, "," or ".".
func formatOf(f field.Field, label string) (field.Format, error) {
	if format, ok := field.FindFormat(f, label); ok {
		return format, nil
	}
	if _, ok := f.(*field.AmountField); ok {
		if sep, ok := number.Separator(label); ok {
			if sep == number.Point {
				return field.EnglishAmount, nil
			}
			return field.GermanAmount, nil
		}
	}
	return nil, fmt.Errorf("field %s has no format %q", f.Code(), label)
}
