// Package extract turns bound statement records into ledger items.
//
// Every record goes through the same states:
//
//	START → FIELD_EXTRACTION → TYPE_INFERENCE → SECURITY_RESOLUTION → UNIT_RECONCILIATION → EMIT
//
// and may be rejected from any of them. A rejected record adds one error to
// the Result and never stops the batch; the next record starts afresh.
package extract

import (
	"context"
	"fmt"

	"github.com/etnz/statements"
	"github.com/etnz/statements/binding"
	"github.com/etnz/statements/field"
	"github.com/etnz/statements/resolve"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// State is a step of the record state machine.
type State string

const (
	Start              State = "START"
	FieldExtraction    State = "FIELD_EXTRACTION"
	TypeInference      State = "TYPE_INFERENCE"
	SecurityResolution State = "SECURITY_RESOLUTION"
	UnitReconciliation State = "UNIT_RECONCILIATION"
	Emit               State = "EMIT"
	Reject             State = "REJECT"
)

// Extractor converts records into items.
type Extractor interface {
	// Code identifies the extractor in layouts, e.g. "account-transaction".
	Code() string
	// Fields returns the fields records are bound to. Their order is the
	// positional binding of headerless files.
	Fields() []field.Field
	Extract(ctx context.Context, records []binding.Record) *Result
}

// RecordError reports a rejected record.
type RecordError struct {
	Index  int
	Source string
	State  State // state the record was rejected in
	Err    error
}

func (e *RecordError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("record %d (%s): %v", e.Index, e.Source, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Result is the outcome of one extraction: the items in emission order and
// one error per rejected record.
type Result struct {
	Items  []statements.Item
	Errors []*RecordError
}

// Err returns all the record errors as one error, nil when there is none.
func (r *Result) Err() error {
	var errs *multierror.Error
	for _, e := range r.Errors {
		errs = multierror.Append(errs, e)
	}
	return errs.ErrorOrNil()
}

// Option configures an extractor.
type Option func(*options)

type options struct {
	logger   zerolog.Logger
	mining   bool
	resolver *resolve.Resolver
}

// WithLogger sets the logger. Rejected records are logged at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithISINMining searches the text of records without any security
// identifier for the ISIN of a ledger security.
func WithISINMining() Option {
	return func(o *options) { o.mining = true }
}

// WithResolver resolves securities with r instead of a resolver per Extract
// call. Extractions sharing r create each new security once.
func WithResolver(r *resolve.Resolver) Option {
	return func(o *options) { o.resolver = r }
}

func newOptions(code string, opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With().Str("extractor", code).Logger()
	return o
}

// rules are the extractor specific steps of the state machine.
type rules interface {
	// infer sets the type of the record and checks the type requirements.
	infer(v *values) error
	// securityCurrency is the currency of a security created for the record.
	securityCurrency(v *values) string
	// build assembles the item and returns the transactions the units go to.
	build(v *values) (statements.Item, []*statements.Tx, error)
}

// run is one Extract call with its run-local state.
type run struct {
	ledger   resolve.Ledger
	resolver *resolve.Resolver
	finder   *field.ISINFinder
	rules    rules
	logger   zerolog.Logger

	fresh     map[*statements.Security]bool // created during the run
	announced map[*statements.Security]bool // emitted as SecurityItem
}

func newRun(ledger resolve.Ledger, r rules, o options) *run {
	x := &run{
		ledger:    ledger,
		resolver:  o.resolver,
		rules:     r,
		logger:    o.logger,
		fresh:     make(map[*statements.Security]bool),
		announced: make(map[*statements.Security]bool),
	}
	if x.resolver == nil {
		x.resolver = resolve.New(ledger, resolve.WithLogger(o.logger))
	}
	if o.mining {
		var ok bool
		if x.finder, ok = field.GuessISIN(ledger.Securities()); !ok {
			x.logger.Debug().Msg("isin mining disabled, no known security has a valid isin")
		}
	}
	return x
}

func (x *run) extract(ctx context.Context, records []binding.Record) *Result {
	result := &Result{}
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, &RecordError{Index: r.Index, Source: r.Source, State: Start, Err: err})
			x.logger.Debug().Int("record", r.Index).Err(err).Msg("extraction cancelled")
			break
		}
		items, state, err := x.process(r)
		if err != nil {
			result.Errors = append(result.Errors, &RecordError{Index: r.Index, Source: r.Source, State: state, Err: err})
			x.logger.Debug().Int("record", r.Index).Str("source", r.Source).Str("state", string(state)).Err(err).Msg("record rejected")
			continue
		}
		result.Items = append(result.Items, items...)
	}
	x.logger.Debug().Int("records", len(records)).Int("items", len(result.Items)).Int("errors", len(result.Errors)).Msg("extraction done")
	return result
}

// process runs the state machine on one record. On error, the returned
// state is the one the record was rejected in.
func (x *run) process(r binding.Record) ([]statements.Item, State, error) {
	v := &values{Record: r}
	steps := []struct {
		state State
		do    func(*values) error
	}{
		{FieldExtraction, x.fields},
		{TypeInference, x.rules.infer},
		{SecurityResolution, x.resolve},
		{UnitReconciliation, x.reconcile},
	}
	for _, step := range steps {
		if err := step.do(v); err != nil {
			return nil, step.state, err
		}
	}
	items, err := x.emit(v)
	if err != nil {
		return nil, Emit, err
	}
	return items, Emit, nil
}

func (x *run) resolve(v *values) error {
	if v.ref.IsZero() {
		return nil
	}
	v.ref.Currency = x.rules.securityCurrency(v)
	res, err := x.resolver.Resolve(v.ref)
	if err != nil {
		return err
	}
	v.security = res.Security
	if res.Created {
		x.fresh[res.Security] = true
	}
	return nil
}

// emit validates the item and returns it, preceded by the SecurityItem of a
// security created during the run and not yet announced.
func (x *run) emit(v *values) ([]statements.Item, error) {
	if err := validate(v.item); err != nil {
		return nil, err
	}
	var items []statements.Item
	if s := v.security; s != nil && x.fresh[s] && !x.announced[s] && referencesSecurity(v.item) {
		x.announced[s] = true
		items = append(items, &statements.SecurityItem{Security: s})
	}
	return append(items, v.item), nil
}

func referencesSecurity(item statements.Item) bool {
	for _, t := range statements.Transactions(item) {
		if t.Base().Security != nil {
			return true
		}
	}
	return false
}

func validate(item statements.Item) error {
	switch i := item.(type) {
	case *statements.TransactionItem:
		if v, ok := i.Transaction.(interface{ Validate() error }); ok {
			return v.Validate()
		}
	case *statements.BuySellItem:
		return i.Entry.Validate()
	case *statements.AccountTransferItem:
		return i.Entry.Validate()
	case *statements.PortfolioTransferItem:
		return i.Entry.Validate()
	}
	return nil
}
