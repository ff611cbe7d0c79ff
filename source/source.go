// Package source reads the raw rows of statement files.
package source

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/statements"
)

// CSVOptions configures CSV.
type CSVOptions struct {
	Delimiter rune // ',' when zero
	SkipLines int  // lines before the first row, e.g. a bank's preamble
}

// CSV reads the rows of a delimited file. A leading byte order mark is
// removed, quotes are lenient and rows may have different lengths.
func CSV(r io.Reader, opts CSVOptions) ([][]string, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && string(b) == "\ufeff" {
		br.Discard(3)
	}
	for i := 0; i < opts.SkipLines; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, err
		}
	}
	cr := csv.NewReader(br)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot read csv: %w", err)
	}
	return rows, nil
}

// Delimiter returns the rune of a one character delimiter, "\t" and "tab"
// naming the tabulation.
func Delimiter(s string) (rune, error) {
	switch s {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	if r := []rune(s); len(r) == 1 {
		return r[0], nil
	}
	return 0, statements.Configf("delimiter %q is not a single character", s)
}

// JSON reads rows out of a JSON document. records is the JSONPath of the
// list of records; each column is the JSONPath of a value relative to a
// record, "$.date" for instance. Missing values are blank, numbers keep their
// literal form with a point.
func JSON(r io.Reader, records string, columns []string) ([][]string, error) {
	list, err := compile(records)
	if err != nil {
		return nil, err
	}
	cols := make([]func(any) (any, error), len(columns))
	for i, c := range columns {
		if cols[i], err = compile(c); err != nil {
			return nil, err
		}
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot read json: %w", err)
	}
	found, err := list(doc)
	if err != nil {
		return nil, fmt.Errorf("records %q: %w", records, err)
	}
	items, ok := found.([]any)
	if !ok {
		items = []any{found}
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, len(cols))
		for i, col := range cols {
			if v, err := col(item); err == nil {
				row[i] = text(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func compile(path string) (func(any) (any, error), error) {
	eval, err := jsonpath.New(path)
	if err != nil {
		return nil, statements.Configf("json path %q: %v", path, err)
	}
	return func(v any) (any, error) { return eval(context.Background(), v) }, nil
}

// text renders a JSON value as a raw cell.
func text(v any) string {
	// a path may select a list of one value
	if list, ok := v.([]any); ok && len(list) == 1 {
		v = list[0]
	}
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return strings.TrimSpace(string(b))
}
