package pdf

import (
	"fmt"
	"os"
	"regexp"

	"dario.cat/mergo"
	"github.com/etnz/statements"
	"github.com/etnz/statements/binding"
	"github.com/etnz/statements/date"
	"github.com/etnz/statements/field"
	"github.com/etnz/statements/number"
	"github.com/ghodss/yaml"
)

// Layout is the YAML description of the documents of one bank.
type Layout struct {
	Name        string         `json:"name" validate:"required"`
	Currency    string         `json:"currency,omitempty" validate:"omitempty,len=3"`
	Decimal     string         `json:"decimal,omitempty"`
	DatePattern string         `json:"datePattern,omitempty"`
	MineISIN    bool           `json:"mineIsin,omitempty"`
	Documents   []DocumentSpec `json:"documents" validate:"required,min=1,dive"`
}

// DocumentSpec is the YAML form of a DocumentType. Patterns use the Go regexp
// syntax, line patterns must match whole lines.
type DocumentSpec struct {
	Name           string        `json:"name" validate:"required"`
	MustInclude    []string      `json:"mustInclude" validate:"required,min=1"`
	MustNotInclude []string      `json:"mustNotInclude,omitempty"`
	Context        []SectionSpec `json:"context,omitempty" validate:"dive"`
	Blocks         []BlockSpec   `json:"blocks" validate:"required,min=1,dive"`
}

type BlockSpec struct {
	Start     string        `json:"start" validate:"required"`
	End       string        `json:"end,omitempty"`
	MaxSize   int           `json:"maxSize,omitempty" validate:"gte=0"`
	Type      string        `json:"type,omitempty"`
	Extractor string        `json:"extractor" validate:"required,oneof=account portfolio"`
	Sections  []SectionSpec `json:"sections" validate:"required,min=1,dive"`
}

type SectionSpec struct {
	Patterns []string `json:"patterns" validate:"required,min=1"`
	Optional bool     `json:"optional,omitempty"`
	Multiple bool     `json:"multiple,omitempty"`
}

// Groups that are not field codes: the currency of a tax or a fee stated in
// the forex currency.
const (
	TaxesCurrency = "taxesCurrency"
	FeesCurrency  = "feesCurrency"
)

// DefaultLayout holds the values of the settings a layout file omits.
func DefaultLayout() Layout {
	return Layout{Decimal: ","}
}

// ParseLayout reads a YAML layout. Errors are *statements.ConfigError.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, &statements.ConfigError{Err: fmt.Errorf("pdf layout: %w", err)}
	}
	if err := mergo.Merge(&l, DefaultLayout()); err != nil {
		return nil, &statements.ConfigError{Err: fmt.Errorf("pdf layout defaults: %w", err)}
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
		return nil, fmt.Errorf("cannot read pdf layout: %w", err)
	}
	return ParseLayout(data)
}

// Validate checks the settings and compiles every document type.
func (l *Layout) Validate() error {
	if err := binding.ValidateStruct("pdf layout "+l.Name, l); err != nil {
		return err
	}
	if _, ok := number.Separator(l.Decimal); !ok {
		return statements.Configf("pdf layout %s: decimal %q, want ',' or '.'", l.Name, l.Decimal)
	}
	if l.DatePattern != "" {
		if _, ok := date.LookupPattern(l.DatePattern); !ok {
			return statements.Configf("pdf layout %s: unknown date pattern %q", l.Name, l.DatePattern)
		}
	}
	if l.Currency != "" && !statements.KnownCurrency(l.Currency) {
		return statements.Configf("pdf layout %s: unknown currency %q", l.Name, l.Currency)
	}
	_, err := l.DocumentTypes()
	return err
}

// DocumentTypes compiles the documents of the layout.
func (l *Layout) DocumentTypes() ([]*DocumentType, error) {
	docs := make([]*DocumentType, 0, len(l.Documents))
	for _, spec := range l.Documents {
		d, err := spec.compile()
		if err != nil {
			return nil, statements.Configf("pdf layout %s: document %s: %v", l.Name, spec.Name, err)
		}
		docs = append(docs, d)
	}
	return docs, nil
}

func (s DocumentSpec) compile() (*DocumentType, error) {
	d := &DocumentType{Name: s.Name}
	var err error
	if d.MustInclude, err = compileAll(s.MustInclude, false); err != nil {
		return nil, err
	}
	if d.MustNotInclude, err = compileAll(s.MustNotInclude, false); err != nil {
		return nil, err
	}
	// context values are defaults of both extractors
	fields := append(field.AccountFields(), field.PortfolioFields()...)
	for i, spec := range s.Context {
		sec, err := spec.compile(fields)
		if err != nil {
			return nil, fmt.Errorf("context %d: %w", i, err)
		}
		d.Context = append(d.Context, sec)
	}
	for i, spec := range s.Blocks {
		b, err := spec.compile()
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		d.Blocks = append(d.Blocks, b)
	}
	return d, nil
}

func (s BlockSpec) compile() (Block, error) {
	b := Block{MaxSize: s.MaxSize, Extractor: s.Extractor}
	var err error
	if b.Start, err = compileLine(s.Start); err != nil {
		return b, err
	}
	if s.End != "" {
		if b.End, err = compileLine(s.End); err != nil {
			return b, err
		}
	}
	fields := extractorFields(s.Extractor)
	if s.Type != "" {
		mapping, _ := field.TypeMapping(fields)
		t, ok := mapping.Lookup(s.Type)
		if !ok {
			return b, fmt.Errorf("type %q is not a %s transaction type", s.Type, s.Extractor)
		}
		b.Type = string(t)
	}
	for i, spec := range s.Sections {
		sec, err := spec.compile(fields)
		if err != nil {
			return b, fmt.Errorf("section %d: %w", i, err)
		}
		b.Sections = append(b.Sections, sec)
	}
	return b, nil
}

// compile checks that the section captures something and that every group
// is a code of fields.
func (s SectionSpec) compile(fields []field.Field) (Section, error) {
	sec := Section{Optional: s.Optional, Multiple: s.Multiple}
	var err error
	if sec.Patterns, err = compileAll(s.Patterns, true); err != nil {
		return sec, err
	}
	groups := sec.Groups()
	if len(groups) == 0 {
		return sec, fmt.Errorf("patterns %q capture no field", s.Patterns)
	}
	for _, g := range groups {
		if g == TaxesCurrency || g == FeesCurrency {
			continue
		}
		if _, ok := field.Lookup(fields, g); !ok {
			return sec, fmt.Errorf("group %q is not a field code", g)
		}
	}
	return sec, nil
}

func extractorFields(extractor string) []field.Field {
	if extractor == "portfolio" {
		return field.PortfolioFields()
	}
	return field.AccountFields()
}

func compileAll(patterns []string, line bool) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compile := regexp.Compile
		if line {
			compile = compileLine
		}
		re, err := compile(p)
		if err != nil {
			return nil, err
		}
		res = append(res, re)
	}
	return res, nil
}

// compileLine compiles a pattern that must match a whole line.
func compileLine(p string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + p + `)$`)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", p, err)
	}
	return re, nil
}
