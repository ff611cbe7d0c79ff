package statements

import "fmt"

// FormatError reports a raw value that could not be parsed under its configured format.
type FormatError struct {
	Field string // field name, empty when parsing outside of a field
	Value string // offending raw value
	Err   error
}

func (e *FormatError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot parse %q: %v", e.Value, e.Err)
	}
	return fmt.Sprintf("field %s: cannot parse %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// UnmappedEnumValueError reports a raw value with no entry in an enum mapping.
type UnmappedEnumValueError struct {
	Field string
	Value string
}

func (e *UnmappedEnumValueError) Error() string {
	return fmt.Sprintf("field %s: value %q is not mapped", e.Field, e.Value)
}

// AmbiguousSecurityError reports an identifier matching several ledger securities.
type AmbiguousSecurityError struct {
	Identifier string // "isin", "wkn", "ticker" or "name"
	Value      string
	Count      int
}

func (e *AmbiguousSecurityError) Error() string {
	return fmt.Sprintf("%s %q matches %d securities", e.Identifier, e.Value, e.Count)
}

// MissingMandatoryFieldError reports a blank or absent mandatory field.
type MissingMandatoryFieldError struct {
	Field string
}

func (e *MissingMandatoryFieldError) Error() string {
	return fmt.Sprintf("mandatory field %s is missing", e.Field)
}

// MissingSecurityReferenceError reports a transaction type requiring a security that has none.
type MissingSecurityReferenceError struct {
	Type Type
}

func (e *MissingSecurityReferenceError) Error() string {
	return fmt.Sprintf("%s requires a security (isin, wkn, ticker or name)", e.Type)
}

// ConfigError reports a malformed configuration; it is fatal to a whole run.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// Configf returns a ConfigError with a formatted message.
func Configf(format string, args ...any) error {
	return &ConfigError{Err: fmt.Errorf(format, args...)}
}
