package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statements/binding"
	"github.com/etnz/statements/extract"
	"github.com/etnz/statements/source"
	"github.com/google/subcommands"
)

type importCSVCmd struct {
	importFlags
	decimal     string
	datePattern string
	header      bool
	mineISIN    bool
}

func (*importCSVCmd) Name() string     { return "import-csv" }
func (*importCSVCmd) Synopsis() string { return "extract the items of CSV statement exports" }
func (*importCSVCmd) Usage() string {
	return `stmt import-csv [-layout <layout.yaml>] [-securities <securities.jsonl>] <file.csv>...

  Reads delimited statement exports and writes the extracted items as JSONL.
  The layout tells which extractor reads the files and how they are written,
  see 'stmt topic layouts'. Without a layout, the fields are read in their
  positional order from a comma delimited file.

  Example: stmt import-csv -layout comdirect.yaml -securities securities.jsonl umsaetze.csv > items.jsonl

`
}

func (c *importCSVCmd) SetFlags(f *flag.FlagSet) {
	c.importFlags.SetFlags(f)
	f.StringVar(&c.decimal, "decimal", "", "Decimal separator of amounts, ',' or '.', overrides the layout.")
	f.StringVar(&c.datePattern, "date-pattern", "", "Date pattern, e.g. dd.MM.yyyy, overrides the layout.")
	f.BoolVar(&c.header, "header", false, "The first row holds column titles.")
	f.BoolVar(&c.mineISIN, "mine-isin", false, "Look for the ISIN of a known security in the text of records without one.")
}

func (c *importCSVCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	l, err := c.loadLayout()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	delimiter, err := source.Delimiter(l.Delimiter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := c.ledger(l.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger := newLogger()
	opts := []extract.Option{extract.WithLogger(logger)}
	if c.mineISIN {
		opts = append(opts, extract.WithISINMining())
	}

	r := &report{}
	for _, name := range f.Args() {
		file, err := os.Open(name)
		if err != nil {
			r.fail(name, err)
			continue
		}
		rows, err := source.CSV(file, source.CSVOptions{Delimiter: delimiter, SkipLines: l.SkipLines})
		file.Close()
		if err != nil {
			r.fail(name, fmt.Errorf("%s: %w", name, err))
			continue
		}
		first := l.SkipLines + 1 // line of rows[0]
		var header []string
		if l.Header && len(rows) > 0 {
			header, rows = rows[0], rows[1:]
			first++
		}

		ex := newExtractor(l.Extractor, ledger, opts...)
		b, err := l.Bind(ex.Fields(), header, rows)
		if err != nil {
			// a binding error is a layout error, the next files would fail alike
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			return subcommands.ExitFailure
		}
		logger.Debug().Str("file", name).Str("layout", l.Name).Int("rows", len(rows)).Msg("bound")

		records := make([]binding.Record, len(rows))
		for i, row := range rows {
			records[i] = b.Record(i, fmt.Sprintf("%s:%d", name, first+i), row)
		}
		r.add(name, len(records), ex.Extract(ctx, records), ledger)
	}
	return c.finish(r, ledger)
}

// loadLayout reads the layout file, or the default layout, and applies the flags.
func (c *importCSVCmd) loadLayout() (*binding.Layout, error) {
	var l *binding.Layout
	var err error
	if c.layout != "" {
		l, err = binding.LoadLayout(c.layout)
	} else {
		l, err = binding.ParseLayout([]byte("name: default\n"))
	}
	if err != nil {
		return nil, err
	}
	if c.decimal != "" {
		l.Decimal = c.decimal
	}
	if c.datePattern != "" {
		l.DatePattern = c.datePattern
	}
	if c.header {
		l.Header = true
	}
	return l, l.Validate()
}
