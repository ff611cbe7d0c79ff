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

type importJSONCmd struct {
	importFlags
}

func (*importJSONCmd) Name() string     { return "import-json" }
func (*importJSONCmd) Synopsis() string { return "extract the items of JSON statement exports" }
func (*importJSONCmd) Usage() string {
	return `stmt import-json -layout <layout.yaml> [-securities <securities.jsonl>] <file.json>...

  Reads JSON documents and writes the extracted items as JSONL. The layout
  jsonRecords key is the JSONPath of the records, jsonColumns the JSONPath of
  each column relative to a record, e.g. '$.amount'.

`
}

func (c *importJSONCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.check(f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.layout == "" {
		fmt.Fprintln(os.Stderr, "-layout is required")
		return subcommands.ExitUsageError
	}
	l, err := binding.LoadLayout(c.layout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if l.JSONRecords == "" || len(l.JSONColumns) == 0 {
		fmt.Fprintf(os.Stderr, "layout %s has no jsonRecords or jsonColumns\n", l.Name)
		return subcommands.ExitFailure
	}
	ledger, err := c.ledger(l.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	logger := newLogger()

	r := &report{}
	for _, name := range f.Args() {
		file, err := os.Open(name)
		if err != nil {
			r.fail(name, err)
			continue
		}
		rows, err := source.JSON(file, l.JSONRecords, l.JSONColumns)
		file.Close()
		if err != nil {
			r.fail(name, fmt.Errorf("%s: %w", name, err))
			continue
		}
		ex := newExtractor(l.Extractor, ledger, extract.WithLogger(logger))
		b, err := l.Bind(ex.Fields(), nil, rows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			return subcommands.ExitFailure
		}
		records := make([]binding.Record, len(rows))
		for i, row := range rows {
			records[i] = b.Record(i, fmt.Sprintf("%s#%d", name, i), row)
		}
		r.add(name, len(records), ex.Extract(ctx, records), ledger)
	}
	return c.finish(r, ledger)
}
