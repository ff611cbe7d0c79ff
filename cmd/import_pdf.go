package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statements/pdf"
	"github.com/google/subcommands"
)

type importPDFCmd struct {
	importFlags
}

func (*importPDFCmd) Name() string     { return "import-pdf" }
func (*importPDFCmd) Synopsis() string { return "extract the items of PDF documents converted to text" }
func (*importPDFCmd) Usage() string {
	return `stmt import-pdf -layout <pdf-layout.yaml> [-securities <securities.jsonl>] <document.txt>...

  Reads the text of bank documents, one file per document, and writes the
  extracted items as JSONL. The layout recognizes the documents of one bank
  and the transactions they hold, see 'stmt topic pdf'.

  Example: pdftotext -layout abrechnung.pdf && stmt import-pdf -layout musterbank.yaml abrechnung.txt

`
}

func (c *importPDFCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.layout == "" {
		fmt.Fprintln(os.Stderr, "-layout is required")
		return subcommands.ExitUsageError
	}
	l, err := pdf.LoadLayout(c.layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	currency := l.Currency
	if currency == "" {
		currency = "EUR"
	}
	ledger, err := c.ledger(currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	p, err := pdf.NewParser(l, ledger, pdf.WithLogger(newLogger()))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	r := &report{}
	for _, name := range f.Args() {
		text, err := os.ReadFile(name)
		if err != nil {
			r.fail(name, err)
			continue
		}
		res, err := p.Extract(ctx, name, string(text))
		if err != nil {
			r.fail(name, err)
			continue
		}
		records := 0
		for _, item := range res.Items {
			if item.Source() != "" {
				records++
			}
		}
		r.add(name, records+len(res.Errors), res, ledger)
	}
	return c.finish(r, ledger)
}
