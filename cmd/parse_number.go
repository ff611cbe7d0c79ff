package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/statements/number"
	"github.com/google/subcommands"
)

type parseNumberCmd struct {
	decimal string
}

func (*parseNumberCmd) Name() string     { return "parse-number" }
func (*parseNumberCmd) Synopsis() string { return "show how amounts are read" }
func (*parseNumberCmd) Usage() string {
	return `stmt parse-number [-decimal ,|.] [--] <token>...

  Prints the value of each token read with the given decimal separator.
  Use -- before tokens starting with a minus sign.
`
}

func (c *parseNumberCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.decimal, "decimal", ",", "The decimal separator, ',' or '.'.")
}

func (c *parseNumberCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sep, ok := number.Separator(c.decimal)
	if !ok {
		fmt.Fprintf(os.Stderr, "decimal %q, want ',' or '.'\n", c.decimal)
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, token := range f.Args() {
		d, err := number.Parse(token, sep)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s = %s\n", token, d)
	}
	return status
}
