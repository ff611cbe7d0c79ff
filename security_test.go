package statements

import "testing"

func TestValidateISIN(t *testing.T) {
	testCases := []struct {
		name      string
		isin      string
		expectErr bool
	}{
		{"Valid Apple ISIN", "US0378331005", false},
		{"Valid SAP ISIN", "DE0007164600", false},
		{"Valid iShares ISIN", "IE00B4L5Y983", false},
		{"Invalid Check Digit", "DE0007164601", true},
		{"Invalid Length (Short)", "US123", true},
		{"Invalid Length (Long)", "US03783310055", true},
		{"Invalid Format (Contains 'X')", "US037833100X", true},
		{"Invalid Format (lowercase)", "us0378331005", true},
		{"Empty String", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateISIN(tc.isin)
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Errorf("ValidateISIN(%q) returned error: %v, want error: %v", tc.isin, err, tc.expectErr)
			}
		})
	}
}

func TestValidateWKN(t *testing.T) {
	for wkn, valid := range map[string]bool{
		"716460":  true,
		"A0YEDG":  true,
		"71646":   false,
		"7164600": false,
		"a0yedg":  false,
	} {
		if err := ValidateWKN(wkn); (err == nil) != valid {
			t.Errorf("ValidateWKN(%q) = %v, want valid %v", wkn, err, valid)
		}
	}
}

func TestISINPattern(t *testing.T) {
	got := ISINPattern.FindAllString("Stück 10 SAP SE DE0007164600 (716460), XDE0007164600 US0378331005.", -1)
	want := []string{"DE0007164600", "US0378331005"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ISINPattern found %q, want %q", got, want)
	}
}

func TestSecurityString(t *testing.T) {
	testCases := []struct {
		security Security
		want     string
	}{
		{Security{Name: "SAP SE", ISIN: "DE0007164600"}, "SAP SE"},
		{Security{ISIN: "DE0007164600", WKN: "716460"}, "DE0007164600"},
		{Security{WKN: "716460", Ticker: "SAP"}, "716460"},
		{Security{Ticker: "SAP.DE"}, "SAP.DE"},
	}
	for _, tc := range testCases {
		if got := tc.security.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	if got := NormalizeIdentifier("  de0007164600 "); got != "DE0007164600" {
		t.Errorf("NormalizeIdentifier() = %q", got)
	}
}

func TestNewSecurity(t *testing.T) {
	a, b := NewSecurity("SAP SE", "EUR"), NewSecurity("SAP SE", "EUR")
	if a.UUID == "" || a.UUID == b.UUID {
		t.Errorf("NewSecurity() UUIDs %q and %q are not unique", a.UUID, b.UUID)
	}
}
