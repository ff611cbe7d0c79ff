package statements

import "testing"

func TestClientMerge(t *testing.T) {
	known := sap()
	c := NewClient("EUR")
	c.AddSecurity(known)

	apple := &Security{UUID: "apple", Name: "Apple", ISIN: "US0378331005", Currency: "USD"}
	deposit := NewAccountTransaction(Deposit, on("2013-01-02"), EUR(100))
	items := []Item{
		&SecurityItem{Security: known},
		&SecurityItem{Security: apple},
		&TransactionItem{Transaction: deposit},
		&SecurityItem{Security: apple},
	}
	if n := c.Merge(items); n != 1 {
		t.Errorf("Merge() = %d, want 1", n)
	}
	if n := c.Merge(items); n != 0 {
		t.Errorf("second Merge() = %d, want 0", n)
	}
	if got := c.Securities(); len(got) != 2 || got[1] != apple {
		t.Errorf("Securities() = %v", got)
	}
	if c.Currency() != "EUR" {
		t.Errorf("Currency() = %q", c.Currency())
	}
}
