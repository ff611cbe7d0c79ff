package statements

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// ISINPattern matches a structurally valid ISIN embedded in text.
var ISINPattern = regexp.MustCompile(`\b[A-Z]{2}[A-Z0-9]{9}[0-9]\b`)

// wknRegex checks the German national identifier: 6 alphanumeric characters.
var wknRegex = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// Security represent a publicly or privately tradeable asset, stock, ETF, bond.
//
// Within one extraction run a Security is shared by pointer between all the
// transactions that reference it.
type Security struct {
	UUID     string `json:"uuid,omitempty"`
	Name     string `json:"name,omitempty"`
	ISIN     string `json:"isin,omitempty"`
	WKN      string `json:"wkn,omitempty"`
	Ticker   string `json:"ticker,omitempty"`
	SEDOL    string `json:"sedol,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// NewSecurity returns a security with a fresh UUID.
func NewSecurity(name, currency string) *Security {
	return &Security{UUID: uuid.NewString(), Name: name, Currency: currency}
}

// String returns the most descriptive identifier of the security.
func (s *Security) String() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.ISIN != "":
		return s.ISIN
	case s.WKN != "":
		return s.WKN
	default:
		return s.Ticker
	}
}

// NormalizeIdentifier trims and upper-cases an ISIN or WKN.
func NormalizeIdentifier(id string) string { return strings.ToUpper(strings.TrimSpace(id)) }

// ValidateISIN checks if a string is a validly formatted ISIN.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// letters count as two digits: A=10 ... Z=35
	var digits strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			digits.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			digits.WriteRune(char)
		}
	}

	// Luhn, doubling from the rightmost digit.
	sum := 0
	double := true
	s := digits.String()
	for i := len(s) - 1; i >= 0; i-- {
		digit := int(s[i] - '0')
		if double {
			digit *= 2
		}
		sum += digit/10 + digit%10
		double = !double
	}

	expected := (10 - sum%10) % 10
	actual := int(isin[11] - '0')
	if expected != actual {
		return fmt.Errorf("invalid check digit: expected %d, got %d", expected, actual)
	}
	return nil
}

// ValidateWKN checks the structure of a Wertpapierkennnummer.
func ValidateWKN(wkn string) error {
	if !wknRegex.MatchString(wkn) {
		return fmt.Errorf("invalid WKN %q: must be 6 uppercase alphanumeric characters", wkn)
	}
	return nil
}
