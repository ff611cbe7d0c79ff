package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/statements"
	"github.com/etnz/statements/field"
	"github.com/google/subcommands"
)

type fieldsCmd struct {
	extractor string
}

func (*fieldsCmd) Name() string     { return "fields" }
func (*fieldsCmd) Synopsis() string { return "list the fields of an extractor" }
func (*fieldsCmd) Usage() string {
	return `stmt fields [-extractor account|portfolio]

  Lists the fields of an extractor in their positional order, with the
  formats each one accepts.
`
}

func (c *fieldsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.extractor, "extractor", "account", "The extractor, account or portfolio.")
}

func (c *fieldsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.extractor != "account" && c.extractor != "portfolio" {
		fmt.Fprintf(os.Stderr, "unknown extractor %q, want account or portfolio\n", c.extractor)
		return subcommands.ExitUsageError
	}
	// fields do not depend on the ledger
	ex := newExtractor(c.extractor, statements.NewClient("EUR"))

	var b strings.Builder
	fmt.Fprintf(&b, "# %s fields\n\n", c.extractor)
	b.WriteString("| # | code | name | | formats |\n")
	b.WriteString("|---:|---|---|---|---|\n")
	for i, fd := range ex.Fields() {
		presence := "mandatory"
		if fd.Optional() {
			presence = "optional"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", i, fd.Code(), fd.Name(), presence, cell(formats(fd)))
	}
	printMarkdown(os.Stdout, b.String())
	return subcommands.ExitSuccess
}

// formats lists the formats of f, or the values of an enumeration.
func formats(f field.Field) string {
	if e, ok := f.(*field.EnumField[statements.Type]); ok {
		var names []string
		for _, v := range e.Mapping().Values() {
			names = append(names, string(v))
		}
		return strings.Join(names, ", ")
	}
	var labels []string
	for _, format := range f.Formats() {
		labels = append(labels, format.String())
	}
	return strings.Join(labels, ", ")
}
