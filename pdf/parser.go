package pdf

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/statements"
	"github.com/etnz/statements/binding"
	"github.com/etnz/statements/extract"
	"github.com/etnz/statements/field"
	"github.com/etnz/statements/number"
	"github.com/etnz/statements/reconcile"
	"github.com/etnz/statements/resolve"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrUnknownDocument is returned for a text no document type of the layout matches.
var ErrUnknownDocument = errors.New("no document type matches")

// Parser extracts the items of document texts with one layout.
type Parser struct {
	layout *Layout
	docs   []*DocumentType
	ledger resolve.Ledger
	logger zerolog.Logger
	amount field.AmountFormat

	bindings   map[string]*binding.Binding
	extractors map[string]func(...extract.Option) extract.Extractor
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger of the parser and its extractors.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// NewParser compiles l and binds the record values of its blocks to the
// fields of each extractor: amounts with the layout decimal separator and
// dates with the layout pattern, any common notation when it has none.
func NewParser(l *Layout, ledger resolve.Ledger, opts ...Option) (*Parser, error) {
	docs, err := l.DocumentTypes()
	if err != nil {
		return nil, err
	}
	p := &Parser{
		layout:   l,
		docs:     docs,
		ledger:   ledger,
		logger:   zerolog.Nop(),
		bindings: make(map[string]*binding.Binding),
		extractors: map[string]func(...extract.Option) extract.Extractor{
			"account":   func(o ...extract.Option) extract.Extractor { return extract.NewAccountExtractor(ledger, o...) },
			"portfolio": func(o ...extract.Option) extract.Extractor { return extract.NewPortfolioExtractor(ledger, o...) },
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	settings := binding.Layout{Name: l.Name, Decimal: l.Decimal, DatePattern: l.DatePattern}
	p.amount, _ = settings.AmountFormat()
	for code, newExtractor := range p.extractors {
		fields := newExtractor().Fields()
		columns := binding.Positional(fields, len(fields))
		for _, c := range columns {
			if _, ok := c.Field.(*field.DateField); ok {
				c.SetFormat(field.LooseDate)
			}
		}
		if err := settings.Apply(fields, columns); err != nil {
			return nil, err
		}
		b, err := binding.New(columns)
		if err != nil {
			return nil, err
		}
		p.bindings[code] = b
	}
	return p, nil
}

// Record is a block turned into the record of an extractor.
type Record struct {
	binding.Record
	Extractor string // "account" or "portfolio"
	Err       error  // why the block cannot be extracted, e.g. a missing mandatory section
}

// Records cuts text into the records of the blocks of every matching
// document type, in document type then block order.
func (p *Parser) Records(name, text string) ([]Record, error) {
	lines := Lines(text)
	var records []Record
	matched := false
	for _, doc := range p.docs {
		if !doc.Matches(text) {
			continue
		}
		matched = true
		defaults := make(map[string]string)
		for _, sec := range doc.Context {
			matches, ok := sec.Match(lines)
			if !ok && !sec.Optional {
				return nil, fmt.Errorf("%s: document %s: %w", name, doc.Name, &statements.MissingMandatoryFieldError{Field: sec.Groups()[0]})
			}
			for _, m := range matches {
				maps.Copy(defaults, m)
			}
		}
		for i := range doc.Blocks {
			def := &doc.Blocks[i]
			for _, r := range def.Ranges(lines) {
				body := lines[r[0] : r[1]+1]
				source := fmt.Sprintf("%s:%d", name, r[0]+1)
				values, err := p.values(def, body, defaults)
				records = append(records, Record{
					Record:    p.bindings[def.Extractor].RecordOf(len(records), source, values, strings.Join(body, "\n")),
					Extractor: def.Extractor,
					Err:       err,
				})
				p.logger.Debug().Str("document", doc.Name).Str("source", source).Int("lines", len(body)).Msg("block")
			}
		}
	}
	if !matched {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownDocument)
	}
	return records, nil
}

// summed are the codes whose values add up when a section matches several times.
var summed = []string{field.Taxes, field.Fees}

// values collects the values of a block over the document defaults.
func (p *Parser) values(def *Block, lines []string, defaults map[string]string) (map[string]string, error) {
	values := maps.Clone(defaults)
	for _, sec := range def.Sections {
		matches, ok := sec.Match(lines)
		if !ok && !sec.Optional {
			return nil, &statements.MissingMandatoryFieldError{Field: sec.Groups()[0]}
		}
		merged, err := p.merge(matches)
		if err != nil {
			return nil, err
		}
		maps.Copy(values, merged)
	}
	if values[field.Type] == "" && def.Type != "" {
		values[field.Type] = def.Type
	}
	if values[field.Currency] == "" && p.layout.Currency != "" {
		values[field.Currency] = p.layout.Currency
	}
	for code, cur := range map[string]string{field.Taxes: TaxesCurrency, field.Fees: FeesCurrency} {
		if err := p.convert(values, code, cur); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// merge merges the matches of a section, the last value wins except for
// taxes and fees that add up.
func (p *Parser) merge(matches []map[string]string) (map[string]string, error) {
	merged := make(map[string]string)
	for _, m := range matches {
		for code, v := range m {
			if prev, ok := merged[code]; ok && slices.Contains(summed, code) {
				x, err := p.amountOf(code, prev)
				if err != nil {
					return nil, err
				}
				y, err := p.amountOf(code, v)
				if err != nil {
					return nil, err
				}
				v = number.Format(x.Add(y), p.amount.Sep)
			}
			merged[code] = v
		}
	}
	return merged, nil
}

func (p *Parser) amountOf(code, raw string) (decimal.Decimal, error) {
	d, err := field.AmountValue(p.amount, raw)
	var ferr *statements.FormatError
	if errors.As(err, &ferr) {
		ferr.Field = code
	}
	return d, err
}

// convert turns the amount of code, stated in the currency captured by the
// group cur, into the transaction currency at the exchange rate of the block,
// quoted as foreign currency per transaction unit (EUR/USD 1,25).
func (p *Parser) convert(values map[string]string, code, cur string) error {
	foreign := strings.ToUpper(values[cur])
	delete(values, cur)
	if foreign == "" || values[code] == "" {
		return nil
	}
	currency := values[field.Currency]
	if currency == "" {
		currency = p.ledger.Currency()
	}
	amount, err := p.amountOf(code, values[code])
	if err != nil {
		return err
	}
	rate := decimal.Zero
	if raw := values[field.ExchangeRate]; raw != "" {
		if rate, err = p.amountOf(field.ExchangeRate, raw); err != nil {
			return err
		}
	}
	m, err := reconcile.ConvertForeign(statements.MoneyOf(amount, foreign), currency, rate)
	if err != nil {
		return err
	}
	values[code] = number.Format(m.Decimal(), p.amount.Sep)
	return nil
}

// Extract extracts the items of one document text. Blocks of account and
// portfolio transactions share the security resolution, so a new security is
// created once.
func (p *Parser) Extract(ctx context.Context, name, text string) (*extract.Result, error) {
	records, err := p.Records(name, text)
	if err != nil {
		return nil, err
	}
	resolver := resolve.New(p.ledger, resolve.WithLogger(p.logger))
	opts := []extract.Option{extract.WithLogger(p.logger), extract.WithResolver(resolver)}
	if p.layout.MineISIN {
		opts = append(opts, extract.WithISINMining())
	}

	result := &extract.Result{}
	var batch []binding.Record
	flush := func(code string) {
		if len(batch) == 0 {
			return
		}
		res := p.extractors[code](opts...).Extract(ctx, batch)
		result.Items = append(result.Items, res.Items...)
		result.Errors = append(result.Errors, res.Errors...)
		batch = nil
	}
	// consecutive records of the same extractor are extracted together
	for i, r := range records {
		if i > 0 && r.Extractor != records[i-1].Extractor {
			flush(records[i-1].Extractor)
		}
		if r.Err != nil {
			result.Errors = append(result.Errors, &extract.RecordError{Index: r.Index, Source: r.Source, State: extract.FieldExtraction, Err: r.Err})
			continue
		}
		batch = append(batch, r.Record)
	}
	if len(records) > 0 {
		flush(records[len(records)-1].Extractor)
	}
	result.Items = announce(result.Items, resolver.Created())
	slices.SortStableFunc(result.Errors, func(a, b *extract.RecordError) int { return a.Index - b.Index })
	return result, nil
}

// announce inserts the SecurityItem of each created security not announced
// yet before the first item referencing it.
func announce(items []statements.Item, created []*statements.Security) []statements.Item {
	announced := make(map[*statements.Security]bool)
	for _, item := range items {
		if si, ok := item.(*statements.SecurityItem); ok {
			announced[si.Security] = true
		}
	}
	for _, s := range created {
		if announced[s] {
			continue
		}
		for i, item := range items {
			if references(item, s) {
				items = slices.Insert(items, i, statements.Item(&statements.SecurityItem{Security: s}))
				break
			}
		}
	}
	return items
}

func references(item statements.Item, s *statements.Security) bool {
	for _, t := range statements.Transactions(item) {
		if t.Base().Security == s {
			return true
		}
	}
	return false
}
