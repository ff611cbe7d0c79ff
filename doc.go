// Package statements is the ledger model that statement extraction produces.
//
// Bank and broker exports are read by the source package, bound to typed
// fields by the binding package and turned into items by the extractors of
// the extract package. This package holds what flows out of them:
//
//   - Money and Shares, fixed point amounts in minor units and 10^-8 shares.
//   - Security, shared by pointer by every transaction of a run.
//   - AccountTransaction and PortfolioTransaction with their typed Units.
//   - Entries pairing the two legs of trades and transfers.
//   - Items, the immutable output of an extraction, and their JSONL encoding.
//
// A Client is the read view of an existing ledger: its base currency and
// known securities. Extractions resolve against it and never modify it;
// callers fold the securities created by a run back with Client.Merge.
//
// Errors returned by the parsing layers belong to a small taxonomy
// (FormatError, UnmappedEnumValueError, AmbiguousSecurityError,
// MissingMandatoryFieldError, MissingSecurityReferenceError) that callers
// inspect with errors.As. A ConfigError is fatal to a whole run.
package statements
