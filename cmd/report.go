package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/statements"
	"github.com/etnz/statements/extract"
)

// report accumulates the results of the files of one import.
type report struct {
	files   []string
	records int
	items   []statements.Item
	errors  []*extract.RecordError
	failed  []error // files that could not be extracted at all
	created int
}

// add appends the result of one file and merges the securities it created
// into ledger, so that the next file resolves against them.
func (r *report) add(name string, records int, res *extract.Result, ledger *statements.Client) {
	r.files = append(r.files, name)
	r.records += records
	r.items = append(r.items, res.Items...)
	r.errors = append(r.errors, res.Errors...)
	r.created += ledger.Merge(res.Items)
}

// fail records a file that could not be extracted. err names the file.
func (r *report) fail(name string, err error) {
	r.files = append(r.files, name)
	r.failed = append(r.failed, err)
}

// Markdown renders the report.
func (r *report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Import report\n\n")
	b.WriteString("| files | records | items | new securities | rejected |\n")
	b.WriteString("|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", len(r.files), r.records, len(r.items), r.created, len(r.errors))

	if len(r.items) > 0 {
		b.WriteString("## Items\n\n")
		b.WriteString("| source | item | type | date | amount | security |\n")
		b.WriteString("|---|---|---|---|---:|---|\n")
		for _, item := range r.items {
			fmt.Fprintf(&b, "| %s | %s |\n", cell(item.Source()), strings.Join(describe(item), " | "))
		}
		b.WriteString("\n")
	}

	if len(r.errors) > 0 {
		b.WriteString("## Rejected records\n\n")
		b.WriteString("| source | state | reason |\n")
		b.WriteString("|---|---|---|\n")
		for _, e := range r.errors {
			source := e.Source
			if source == "" {
				source = fmt.Sprintf("record %d", e.Index)
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(source), e.State, cell(e.Err.Error()))
		}
		b.WriteString("\n")
	}

	if len(r.failed) > 0 {
		b.WriteString("## Failed files\n\n")
		for _, err := range r.failed {
			fmt.Fprintf(&b, "- %s\n", cell(err.Error()))
		}
	}
	return b.String()
}

// describe returns the kind, type, date, amount and security cells of item.
func describe(item statements.Item) []string {
	switch i := item.(type) {
	case *statements.SecurityItem:
		return []string{string(i.Kind()), "", "", "", cell(i.Security.String())}
	case *statements.NonImportableItem:
		return []string{string(i.Kind()), string(i.Type), "", "", cell(i.Reason)}
	}
	txs := statements.Transactions(item)
	if len(txs) == 0 {
		return []string{string(item.Kind()), "", "", "", ""}
	}
	t := txs[0].Base()
	security := ""
	for _, tx := range txs {
		if s := tx.Base().Security; s != nil {
			security = cell(s.String())
		}
	}
	return []string{string(item.Kind()), string(t.Type), t.DateTime.String(), t.Amount.String(), security}
}

// cell escapes s for a markdown table.
func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", `\|`), "\n", " ")
}

// printMarkdown renders md for the terminal, or writes it raw when it cannot.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, md)
}
