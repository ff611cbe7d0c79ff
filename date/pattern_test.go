package date

import "testing"

func TestPatternParse(t *testing.T) {
	testCases := []struct {
		label   string
		input   string
		want    Date
		wantErr bool
	}{
		{"dd.MM.yyyy", "02.01.2013", New(2013, 1, 2), false},
		{"dd.MM.yyyy", "2.1.2013", Date{}, true},
		{"dd.MM.yy", "31.12.13", New(2013, 12, 31), false},
		{"yyyyMMdd", "20130102", New(2013, 1, 2), false},
		{"MM/dd/yyyy", "12/31/2013", New(2013, 12, 31), false},
		{"dd-MMM-yyyy", "05-Mär-2013", New(2013, 3, 5), false},
		{"dd-MMM-yyyy", "05-Mar-2013", New(2013, 3, 5), false},
		{"d. MMMM yyyy", "3. März 2013", New(2013, 3, 3), false},
		{"d. MMMM yyyy", "3. January 2013", New(2013, 1, 3), false},
		{"yyyy-MM-dd", "2013-02-30", Date{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.label+" "+tc.input, func(t *testing.T) {
			p, ok := LookupPattern(tc.label)
			if !ok {
				t.Fatalf("unknown pattern %q", tc.label)
			}
			got, err := p.Parse(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestPatternFormat(t *testing.T) {
	p, _ := LookupPattern("dd.MM.yyyy")
	if got := p.Format(New(2013, 1, 2)); got != "02.01.2013" {
		t.Errorf("Format() = %q", got)
	}
	if _, ok := LookupPattern("dd.mm.yyyy"); ok {
		t.Errorf("labels are case sensitive")
	}
}

func TestGuessPattern(t *testing.T) {
	testCases := []struct {
		sample string
		want   string
	}{
		{"2013-01-02", "yyyy-MM-dd"},
		{" 31.12.2013 ", "dd.MM.yyyy"},
		{"12/31/2013", "MM/dd/yyyy"},
		{"31/12/2013", "dd/MM/yyyy"},
		{"garbage", "yyyy-MM-dd"},
	}
	for _, tc := range testCases {
		if got := GuessPattern(tc.sample); got.Label != tc.want {
			t.Errorf("GuessPattern(%q) = %s, want %s", tc.sample, got, tc.want)
		}
	}
}

func TestParseLoose(t *testing.T) {
	testCases := []struct {
		input string
		want  Date
	}{
		{"2013-1-2", New(2013, 1, 2)},
		{"2.1.2013", New(2013, 1, 2)},
		{"02.01.13", New(2013, 1, 2)},
		{"3. März 2013", New(2013, 3, 3)},
		{"5  Dez   2013", New(2013, 12, 5)},
		{"Jan 5, 2013", New(2013, 1, 5)},
		{"20130102", New(2013, 1, 2)},
	}
	for _, tc := range testCases {
		got, err := ParseLoose(tc.input)
		if err != nil {
			t.Errorf("ParseLoose(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLoose(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
	if _, err := ParseLoose("13/45/2013"); err == nil {
		t.Errorf("ParseLoose accepted an invalid date")
	}
}
