// Package number parses numeric tokens written in an unknown regional convention.
//
// The only hint is the configured decimal separator, a comma or a point. The
// other character is always a grouping separator, and so is the apostrophe.
package number

import (
	"errors"
	"strings"
	"unicode"

	"github.com/etnz/statements"
	"github.com/shopspring/decimal"
)

// Decimal separators.
const (
	Comma = ','
	Point = '.'
)

var (
	errEmpty  = errors.New("no digits")
	errSyntax = errors.New("not a number")
	errSign   = errors.New("misplaced sign")
)

// currencySymbols are stripped when they prefix a token.
const currencySymbols = "€$£¥₣₤₹₽₺₩₪฿"

// Parse converts token into a decimal. sep is the configured decimal separator.
// Failures are *statements.FormatError naming the token.
func Parse(token string, sep rune) (decimal.Decimal, error) {
	d, err := parse(token, sep)
	if err != nil {
		return decimal.Zero, &statements.FormatError{Value: token, Err: err}
	}
	return d, nil
}

// MustParse is like Parse but panics on error.
func MustParse(token string, sep rune) decimal.Decimal {
	d, err := Parse(token, sep)
	if err != nil {
		panic(err)
	}
	return d
}

func parse(token string, sep rune) (decimal.Decimal, error) {
	if sep != Comma && sep != Point {
		return decimal.Zero, errors.New("decimal separator must be ',' or '.'")
	}
	grouping := Point
	if sep == Point {
		grouping = Comma
	}

	s := strings.TrimSpace(token)
	s = strings.TrimSuffix(s, "%")
	s = trimCurrency(s)

	// canonical form: optional sign, digits, at most one '.', optional exponent.
	var mantissa, exponent strings.Builder
	decimalAt := -1 // index in mantissa where the decimal point goes
	digits := 0
	inExponent := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if inExponent {
				exponent.WriteRune(r)
			} else {
				mantissa.WriteRune(r)
				digits++
			}
		case r == '\'' || unicode.IsSpace(r) || r == grouping:
			// grouping
		case r == sep:
			if inExponent {
				return decimal.Zero, errSyntax
			}
			// the last separator wins, earlier ones read as grouping
			decimalAt = digits
		case r == '+' || r == '-':
			switch {
			case inExponent && exponent.Len() == 0:
				exponent.WriteRune(r)
			case !inExponent && mantissa.Len() == 0 && decimalAt < 0:
				mantissa.WriteRune(r)
			default:
				return decimal.Zero, errSign
			}
		case (r == 'E' || r == 'e') && digits > 0 && !inExponent:
			inExponent = true
		default:
			return decimal.Zero, errSyntax
		}
	}
	if digits == 0 {
		return decimal.Zero, errEmpty
	}
	if inExponent && strings.Trim(exponent.String(), "+-") == "" {
		return decimal.Zero, errSyntax
	}

	m := mantissa.String()
	sign := ""
	if strings.HasPrefix(m, "+") || strings.HasPrefix(m, "-") {
		sign, m = m[:1], m[1:]
	}
	if sign == "+" {
		sign = ""
	}
	canonical := m
	if decimalAt >= 0 && decimalAt < len(m) {
		canonical = m[:decimalAt] + "." + m[decimalAt:]
		if decimalAt == 0 {
			canonical = "0" + canonical
		}
	}
	if inExponent {
		canonical += "e" + exponent.String()
	}
	return decimal.NewFromString(sign + canonical)
}

// trimCurrency removes a leading ISO code or currency symbol, e.g. "EUR 42,42" or "€42".
func trimCurrency(s string) string {
	i := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !strings.ContainsRune(currencySymbols, r)
	})
	if i < 0 {
		// only letters, leave it to the caller to fail
		return s
	}
	return strings.TrimSpace(s[i:])
}

// Format writes d with the configured decimal separator and no grouping,
// so that Parse(Format(d, sep), sep) equals d.
func Format(d decimal.Decimal, sep rune) string {
	s := d.String()
	if sep == Comma {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

// Separator returns the decimal separator rune named by s: "," or "." (or the
// format labels "0.000,00" and "0,000.00").
func Separator(s string) (rune, bool) {
	switch s {
	case ",", "0.000,00", "0'000,00":
		return Comma, true
	case ".", "0,000.00":
		return Point, true
	}
	return 0, false
}
