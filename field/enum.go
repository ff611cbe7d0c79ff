package field

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/etnz/statements"
)

var errNotAmount = errors.New("format does not produce an amount")

type entry[T ~string] struct {
	raw   string
	value T
	re    *regexp.Regexp // nil when raw is not a valid expression
}

// EnumMap maps raw strings to the values of a closed enumeration.
// It is mutable: callers may register locale specific words at any time.
type EnumMap[T ~string] struct {
	values  []T
	entries []entry[T]
}

// NewEnumMap returns a map accepting values, each initially mapped from its own name.
func NewEnumMap[T ~string](values []T) *EnumMap[T] {
	m := &EnumMap[T]{values: values}
	for _, v := range values {
		m.Register(string(v), v)
	}
	return m
}

// Register maps raw to v, replacing a previous mapping of raw.
func (m *EnumMap[T]) Register(raw string, v T) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	re, _ := regexp.Compile(raw)
	for i, e := range m.entries {
		if strings.EqualFold(e.raw, raw) {
			m.entries[i] = entry[T]{raw, v, re}
			return
		}
	}
	m.entries = append(m.entries, entry[T]{raw, v, re})
}

// Lookup resolves raw: first an exact case-insensitive match of a mapped
// string, then a mapped string used as a regular expression searched in raw,
// longest mapped strings first.
func (m *EnumMap[T]) Lookup(raw string) (T, bool) {
	raw = strings.TrimSpace(raw)
	for _, e := range m.entries {
		if strings.EqualFold(e.raw, raw) {
			return e.value, true
		}
	}
	byLength := make([]entry[T], len(m.entries))
	copy(byLength, m.entries)
	sort.SliceStable(byLength, func(i, j int) bool { return len(byLength[i].raw) > len(byLength[j].raw) })
	for _, e := range byLength {
		if e.re != nil && e.re.MatchString(raw) {
			return e.value, true
		}
	}
	var zero T
	return zero, false
}

// Parse implements Format.
func (m *EnumMap[T]) Parse(raw string) (any, error) {
	v, ok := m.Lookup(raw)
	if !ok {
		return nil, &statements.UnmappedEnumValueError{Value: strings.TrimSpace(raw)}
	}
	return v, nil
}

// Values returns the values of the enumeration.
func (m *EnumMap[T]) Values() []T { return m.values }

// String returns the text form "NAME=raw;NAME=raw" of the mappings that differ from the names.
func (m *EnumMap[T]) String() string {
	var parts []string
	for _, e := range m.entries {
		if e.raw == string(e.value) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", e.value, e.raw))
	}
	return strings.Join(parts, ";")
}

// Apply registers the mappings of a "NAME=raw;NAME=raw" text.
func (m *EnumMap[T]) Apply(text string) error {
	for _, part := range strings.Split(text, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		name, raw, ok := strings.Cut(part, "=")
		if !ok {
			return statements.Configf("enum mapping %q: want NAME=value", part)
		}
		v, ok := m.value(strings.TrimSpace(name))
		if !ok {
			return statements.Configf("enum mapping %q: unknown value %q", part, name)
		}
		m.Register(raw, v)
	}
	return nil
}

func (m *EnumMap[T]) value(name string) (T, bool) {
	for _, v := range m.values {
		if strings.EqualFold(string(v), name) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// EnumField maps raw strings to an enumeration through a mutable EnumMap.
type EnumField[T ~string] struct {
	base
	mapping *EnumMap[T]
}

// NewEnum returns an enum field seeded with the value names and labels.
func NewEnum[T ~string](code, name string, optional bool, values []T, labels map[T][]string) *EnumField[T] {
	m := NewEnumMap(values)
	for _, v := range values {
		for _, l := range labels[v] {
			m.Register(l, v)
		}
	}
	return &EnumField[T]{base: base{code, name, optional}, mapping: m}
}

// Mapping returns the field's mapping, changes to it apply to every column bound to the field.
func (f *EnumField[T]) Mapping() *EnumMap[T] { return f.mapping }

func (f *EnumField[T]) Formats() []Format   { return []Format{f.mapping} }
func (f *EnumField[T]) Guess(string) Format { return f.mapping }

// TypeLabels are the English and German words statements use for transaction types.
var TypeLabels = map[statements.Type][]string{
	statements.Buy:              {"Buy", "Purchase", "Kauf"},
	statements.Sell:             {"Sell", "Sale", "Verkauf"},
	statements.Dividends:        {"Dividend", "Dividende", "Ausschüttung"},
	statements.Deposit:          {"Deposit", "Einlage", "Einzahlung"},
	statements.Removal:          {"Removal", "Withdrawal", "Entnahme", "Auszahlung"},
	statements.TransferIn:       {"Transfer (Inbound)", "Umbuchung (Eingang)"},
	statements.TransferOut:      {"Transfer (Outbound)", "Umbuchung (Ausgang)"},
	statements.Fees:             {"Fees", "Gebühren"},
	statements.FeesRefund:       {"Fees Refund", "Gebührenerstattung"},
	statements.Taxes:            {"Taxes", "Steuern"},
	statements.TaxRefund:        {"Tax Refund", "Steuerrückerstattung"},
	statements.Interest:         {"Interest", "Zinsen"},
	statements.InterestCharge:   {"Interest Charge", "Zinsbelastung"},
	statements.DeliveryInbound:  {"Delivery (Inbound)", "Einlieferung"},
	statements.DeliveryOutbound: {"Delivery (Outbound)", "Auslieferung"},
}
