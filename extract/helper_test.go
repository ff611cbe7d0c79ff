package extract

import (
	"testing"

	"github.com/etnz/statements"
	"github.com/etnz/statements/binding"
)

func EUR(v float64) statements.Money { return statements.MoneyOf(v, "EUR") }
func USD(v float64) statements.Money { return statements.MoneyOf(v, "USD") }

// records binds rows positionally to the extractor fields, guessing formats from the rows.
func records(t *testing.T, e Extractor, rows ...[]string) []binding.Record {
	t.Helper()
	n := len(e.Fields())
	for _, row := range rows {
		n = max(n, len(row))
	}
	columns := binding.Positional(e.Fields(), n)
	binding.GuessFormats(columns, rows)
	b, err := binding.New(columns)
	if err != nil {
		t.Fatal(err)
	}
	rs := make([]binding.Record, len(rows))
	for i, row := range rows {
		rs[i] = b.Record(i, "", row)
	}
	return rs
}

// ledger returns a EUR ledger with securities.
func ledger(securities ...*statements.Security) *statements.Client {
	c := statements.NewClient("EUR")
	c.AddSecurity(securities...)
	return c
}

// only returns the single item of type T in items.
func only[T statements.Item](t *testing.T, items []statements.Item) T {
	t.Helper()
	var found []T
	for _, item := range items {
		if v, ok := item.(T); ok {
			found = append(found, v)
		}
	}
	if len(found) != 1 {
		var zero T
		t.Fatalf("got %d items of type %T, want 1", len(found), zero)
	}
	return found[0]
}

func account(t *testing.T, items []statements.Item) *statements.AccountTransaction {
	t.Helper()
	item := only[*statements.TransactionItem](t, items)
	tx, ok := item.Transaction.(*statements.AccountTransaction)
	if !ok {
		t.Fatalf("got %T, want an account transaction", item.Transaction)
	}
	return tx
}

func portfolio(t *testing.T, items []statements.Item) *statements.PortfolioTransaction {
	t.Helper()
	item := only[*statements.TransactionItem](t, items)
	tx, ok := item.Transaction.(*statements.PortfolioTransaction)
	if !ok {
		t.Fatalf("got %T, want a portfolio transaction", item.Transaction)
	}
	return tx
}

func checkResult(t *testing.T, res *Result, items, errs int) {
	t.Helper()
	if len(res.Errors) != errs {
		t.Fatalf("got %d errors, want %d: %v", len(res.Errors), errs, res.Err())
	}
	if len(res.Items) != items {
		t.Fatalf("got %d items, want %d", len(res.Items), items)
	}
}
