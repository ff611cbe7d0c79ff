// Package resolve finds or creates the securities referenced by statement records.
//
// A Resolver serves one extraction run. Securities it creates are kept in a
// run-local cache under every identifier they carry, so that a second record
// referencing the same identifier gets the same instance back, announced as
// created only the first time.
package resolve

import (
	"strings"

	"github.com/etnz/statements"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
)

// Ledger is the read view of the existing securities.
type Ledger interface {
	Securities() []*statements.Security
	Currency() string
}

// Reference holds the security identifiers found in a record.
type Reference struct {
	ISIN     string
	WKN      string
	Ticker   string
	SEDOL    string
	Name     string
	Currency string // currency of a security to create
}

// IsZero reports whether the reference names no security.
func (r Reference) IsZero() bool {
	return r.ISIN == "" && r.WKN == "" && r.Ticker == "" && r.SEDOL == "" && r.Name == ""
}

func (r Reference) normalized() Reference {
	return Reference{
		ISIN:     statements.NormalizeIdentifier(r.ISIN),
		WKN:      statements.NormalizeIdentifier(r.WKN),
		Ticker:   strings.TrimSpace(r.Ticker),
		SEDOL:    statements.NormalizeIdentifier(r.SEDOL),
		Name:     strings.TrimSpace(r.Name),
		Currency: strings.ToUpper(strings.TrimSpace(r.Currency)),
	}
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Security *statements.Security // nil when the reference is empty
	Created  bool                 // true the first time a new security is returned
}

type identifier struct {
	kind  string // isin, wkn, ticker, sedol or name
	value string
}

func (id identifier) key() string { return id.kind + ":" + strings.ToUpper(id.value) }

// identifiers lists the identifiers of r in matching order. The name is only
// used when no identifier is given.
func (r Reference) identifiers() []identifier {
	var ids []identifier
	if r.ISIN != "" {
		ids = append(ids, identifier{"isin", r.ISIN})
	}
	if r.WKN != "" {
		ids = append(ids, identifier{"wkn", r.WKN})
	}
	if r.Ticker != "" {
		ids = append(ids, identifier{"ticker", r.Ticker})
	}
	if r.SEDOL != "" {
		ids = append(ids, identifier{"sedol", r.SEDOL})
	}
	if len(ids) == 0 && r.Name != "" {
		ids = append(ids, identifier{"name", r.Name})
	}
	return ids
}

// Resolver resolves references against a ledger for one run.
type Resolver struct {
	ledger  Ledger
	run     *cache.Cache
	created []*statements.Security
	logger  zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger of the resolver.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// New returns a resolver with an empty run cache.
func New(ledger Ledger, opts ...Option) *Resolver {
	r := &Resolver{
		ledger: ledger,
		run:    cache.New(cache.NoExpiration, 0),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the security ref points to.
//
// Identifiers are tried in order ISIN, WKN, ticker, SEDOL, then name when no
// identifier is given. An identifier matching several ledger securities fails
// with *statements.AmbiguousSecurityError; a single match is reused. When no
// identifier matches, a new security is created once for the run.
func (r *Resolver) Resolve(ref Reference) (Resolution, error) {
	ref = ref.normalized()
	if ref.IsZero() {
		return Resolution{}, nil
	}
	ids := ref.identifiers()
	for _, id := range ids {
		matches := r.match(id)
		switch {
		case len(matches) > 1:
			return Resolution{}, &statements.AmbiguousSecurityError{Identifier: id.kind, Value: id.value, Count: len(matches)}
		case len(matches) == 1:
			return Resolution{Security: matches[0]}, nil
		}
		if s, found := r.run.Get(id.key()); found {
			return Resolution{Security: s.(*statements.Security)}, nil
		}
	}
	s := r.create(ref, ids)
	return Resolution{Security: s, Created: true}, nil
}

// Created returns the securities created during the run, in creation order.
func (r *Resolver) Created() []*statements.Security { return r.created }

func (r *Resolver) match(id identifier) []*statements.Security {
	var matches []*statements.Security
	for _, s := range r.ledger.Securities() {
		if id.matches(s) {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 && id.kind == "ticker" {
		for _, s := range r.ledger.Securities() {
			if s.Ticker != "" && strings.EqualFold(symbol(s.Ticker), symbol(id.value)) {
				matches = append(matches, s)
			}
		}
	}
	return matches
}

func (id identifier) matches(s *statements.Security) bool {
	switch id.kind {
	case "isin":
		return statements.NormalizeIdentifier(s.ISIN) == id.value
	case "wkn":
		return statements.NormalizeIdentifier(s.WKN) == id.value
	case "ticker":
		return strings.EqualFold(strings.TrimSpace(s.Ticker), id.value)
	case "sedol":
		return statements.NormalizeIdentifier(s.SEDOL) == id.value
	case "name":
		return strings.EqualFold(strings.TrimSpace(s.Name), id.value)
	}
	return false
}

// symbol strips the exchange suffix of a ticker: "SAP.DE" is "SAP".
func symbol(ticker string) string {
	if i := strings.IndexByte(ticker, '.'); i > 0 {
		return ticker[:i]
	}
	return ticker
}

func (r *Resolver) create(ref Reference, ids []identifier) *statements.Security {
	name := ref.Name
	if name == "" {
		name = ids[0].value
	}
	currency := ref.Currency
	if currency == "" {
		currency = r.ledger.Currency()
	}
	s := statements.NewSecurity(name, currency)
	s.ISIN, s.WKN, s.Ticker, s.SEDOL = ref.ISIN, ref.WKN, ref.Ticker, ref.SEDOL

	for _, id := range ids {
		r.run.Set(id.key(), s, cache.NoExpiration)
	}
	if ref.Name != "" {
		r.run.Set(identifier{"name", ref.Name}.key(), s, cache.NoExpiration)
	}
	r.created = append(r.created, s)
	r.logger.Debug().Str("security", s.String()).Str("isin", s.ISIN).Str("currency", s.Currency).Msg("security created")
	return s
}
