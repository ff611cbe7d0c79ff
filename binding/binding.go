// Package binding maps the raw columns of a statement export to fields.
//
// A Column binds one input position to a field and the format its values are
// parsed with. Columns are independent: repointing one column, or changing its
// format, never touches the others, so two amount columns of the same file may
// use different decimal conventions.
package binding

import (
	"github.com/etnz/statements"
	"github.com/etnz/statements/field"
)

// Column binds an input column to a field.
type Column struct {
	Index  int          // position in the raw row
	Label  string       // header text, empty for headerless files
	Field  field.Field  // nil when the column is ignored
	Format field.Format // nil means the field's default format
}

// SetField repoints c to f with f's default format. A nil f unbinds the column.
func (c *Column) SetField(f field.Field) {
	c.Field = f
	c.Format = nil
	if f != nil {
		c.Format = f.Formats()[0]
	}
}

// SetFormat changes the format of c.
func (c *Column) SetFormat(f field.Format) { c.Format = f }

// Guess sets the format of c from a sample value.
func (c *Column) Guess(sample string) {
	if c.Field != nil {
		c.Format = c.Field.Guess(sample)
	}
}

// Binding is a validated set of columns.
type Binding struct {
	columns []*Column
	byCode  map[string]*Column
}

// New validates columns and returns their binding.
//
// A column must have a non-negative index not used by another column, a field
// may be bound at most once, and the format must be one of the field's
// candidates. A violation is a *statements.ConfigError.
func New(columns []*Column) (*Binding, error) {
	b := &Binding{byCode: make(map[string]*Column)}
	indexes := make(map[int]bool)
	for _, c := range columns {
		if c.Index < 0 {
			return nil, statements.Configf("column %d: negative index", c.Index)
		}
		if indexes[c.Index] {
			return nil, statements.Configf("column %d: bound twice", c.Index)
		}
		indexes[c.Index] = true
		b.columns = append(b.columns, c)
		if c.Field == nil {
			continue
		}
		key := field.Key(c.Field.Code())
		if prev, exists := b.byCode[key]; exists {
			return nil, statements.Configf("field %s: bound to columns %d and %d", c.Field.Code(), prev.Index, c.Index)
		}
		if c.Format == nil {
			c.Format = c.Field.Formats()[0]
		}
		if !accepts(c.Field, c.Format) {
			return nil, statements.Configf("column %d: format %q is not a format of field %s", c.Index, c.Format, c.Field.Code())
		}
		b.byCode[key] = c
	}
	return b, nil
}

// accepts reports whether format is a candidate of f. The ISIN finder is
// accepted on ISIN fields.
func accepts(f field.Field, format field.Format) bool {
	if _, ok := format.(*field.ISINFinder); ok {
		_, isISIN := f.(*field.ISINField)
		return isISIN
	}
	for _, candidate := range f.Formats() {
		if candidate == format || candidate.String() == format.String() {
			return true
		}
	}
	return false
}

// Columns returns all columns, bound or not.
func (b *Binding) Columns() []*Column { return b.columns }

// Column returns the column bound to the field code.
func (b *Binding) Column(code string) (*Column, bool) {
	c, ok := b.byCode[field.Key(code)]
	return c, ok
}

// Bound reports whether some column is bound to the field code.
func (b *Binding) Bound(code string) bool {
	_, ok := b.byCode[field.Key(code)]
	return ok
}

// Record returns the record of a raw row. Values are trimmed; missing
// trailing cells are blank.
func (b *Binding) Record(index int, source string, raw []string) Record {
	r := Record{Index: index, Source: source, binding: b, values: make(map[string]string, len(b.byCode))}
	for key, c := range b.byCode {
		if c.Index < len(raw) {
			r.values[key] = trim(raw[c.Index])
		}
	}
	r.Body = join(raw)
	return r
}

// RecordOf returns the record of values keyed by field code. Codes that are
// not bound are ignored.
func (b *Binding) RecordOf(index int, source string, values map[string]string, body string) Record {
	r := Record{Index: index, Source: source, Body: body, binding: b, values: make(map[string]string, len(values))}
	for code, v := range values {
		key := field.Key(code)
		if _, ok := b.byCode[key]; ok {
			r.values[key] = trim(v)
		}
	}
	return r
}

// Positional binds column i to fields[i] with default formats, for files without header.
// Columns beyond the fields stay unbound.
func Positional(fields []field.Field, n int) []*Column {
	columns := make([]*Column, n)
	for i := range columns {
		columns[i] = &Column{Index: i}
		if i < len(fields) {
			columns[i].SetField(fields[i])
		}
	}
	return columns
}

// GuessFormats sets the format of every bound column from the first non blank
// value found in rows.
func GuessFormats(columns []*Column, rows [][]string) {
	for _, c := range columns {
		if c.Field == nil {
			continue
		}
		for _, row := range rows {
			if c.Index < len(row) && trim(row[c.Index]) != "" {
				c.Guess(trim(row[c.Index]))
				break
			}
		}
	}
}
