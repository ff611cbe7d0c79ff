package cmd

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/etnz/statements"
	"github.com/etnz/statements/extract"
	"github.com/etnz/statements/resolve"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// importFlags are the flags and the output of the import commands.
type importFlags struct {
	layout     string
	securities string
	update     bool
	strict     bool
	report     bool
	html       string
	output     string
}

func (c *importFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.layout, "layout", "", "Layout file describing the source.")
	f.StringVar(&c.securities, "securities", "", "JSONL file of the known securities.")
	f.BoolVar(&c.update, "update", false, "Add the securities created by the import to the -securities file.")
	f.BoolVar(&c.strict, "strict", false, "Exit with a failure when a record is rejected.")
	f.BoolVar(&c.report, "report", false, "Print an import report on stderr.")
	f.StringVar(&c.html, "html", "", "Write the import report as HTML to this file.")
	f.StringVar(&c.output, "o", "", "Write the items to this file instead of stdout.")
}

// check validates the flag combinations.
func (c *importFlags) check(f *flag.FlagSet) error {
	if f.NArg() == 0 {
		return errors.New("no file to import")
	}
	if c.update && c.securities == "" {
		return errors.New("-update requires -securities")
	}
	return nil
}

// ledger returns the known securities, resolved against with the given base
// currency. A missing securities file is an empty ledger.
func (c *importFlags) ledger(currency string) (*statements.Client, error) {
	client := statements.NewClient(currency)
	if c.securities == "" {
		return client, nil
	}
	f, err := os.Open(c.securities)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: %s does not exist, starting with no securities\n", c.securities)
		return client, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	securities, err := statements.DecodeSecurities(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read securities %s: %w", c.securities, err)
	}
	client.AddSecurity(securities...)
	return client, nil
}

// finish writes the items of every file, the securities and the reports.
func (c *importFlags) finish(r *report, ledger *statements.Client) subcommands.ExitStatus {
	for _, err := range r.failed {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	for _, e := range r.errors {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", e)
	}

	var out io.Writer = os.Stdout
	if c.output != "" {
		f, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		out = f
	}
	if err := statements.EncodeItems(out, r.items); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing items: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.update && r.created > 0 {
		var b bytes.Buffer
		if err := statements.EncodeSecurities(&b, ledger.Securities()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding securities: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.securities, b.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing securities %s: %v\n", c.securities, err)
			return subcommands.ExitFailure
		}
	}

	md := r.Markdown()
	if c.report {
		printMarkdown(os.Stderr, md)
	}
	if c.html != "" {
		if err := writeHTML(c.html, md); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report %s: %v\n", c.html, err)
			return subcommands.ExitFailure
		}
	}

	if c.strict && (len(r.errors) > 0 || len(r.failed) > 0) {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// newExtractor returns the extractor named by a layout.
func newExtractor(code string, ledger resolve.Ledger, opts ...extract.Option) extract.Extractor {
	if code == "portfolio" {
		return extract.NewPortfolioExtractor(ledger, opts...)
	}
	return extract.NewAccountExtractor(ledger, opts...)
}

// writeHTML converts the markdown report into an HTML file.
func writeHTML(path, md string) error {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Import report</title></head><body>\n")
	converter := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := converter.Convert([]byte(md), &b); err != nil {
		return err
	}
	b.WriteString("</body></html>\n")
	return os.WriteFile(path, b.Bytes(), 0644)
}
