// Package pdf extracts transactions from the text of bank documents.
//
// A document type recognizes a kind of document by its content and cuts it
// into blocks, one per transaction. Sections of line patterns capture the
// values of a block in regexp named groups, the group names being field
// codes. Each block becomes a binding.Record handed to the account or the
// portfolio extractor.
package pdf

import (
	"regexp"
	"strings"
)

// Section is a sequence of patterns matched in order, each against a whole
// line. Values are the named groups of the matched patterns.
type Section struct {
	Patterns []*regexp.Regexp
	Optional bool // the block is kept when the section does not match
	Multiple bool // the section may match several times
}

// Match returns the values of every complete match of s in lines, and false
// when s never matched completely.
func (s *Section) Match(lines []string) ([]map[string]string, bool) {
	var matches []map[string]string
	values := make(map[string]string)
	next := 0
	for _, line := range lines {
		p := s.Patterns[next]
		m := p.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for i, name := range p.SubexpNames() {
			if name != "" && m[i] != "" {
				values[name] = m[i]
			}
		}
		next++
		if next < len(s.Patterns) {
			continue
		}
		matches = append(matches, values)
		if !s.Multiple {
			break
		}
		values, next = make(map[string]string), 0
	}
	return matches, len(matches) > 0
}

// Groups returns the group names of the section, in pattern order.
func (s *Section) Groups() []string {
	var groups []string
	for _, p := range s.Patterns {
		for _, name := range p.SubexpNames() {
			if name != "" {
				groups = append(groups, name)
			}
		}
	}
	return groups
}

// Block delimits the lines of one transaction.
type Block struct {
	Start     *regexp.Regexp
	End       *regexp.Regexp // optional
	MaxSize   int            // maximum number of lines, 0 for no limit
	Type      string         // transaction type when no section captures one
	Extractor string         // "account" or "portfolio"
	Sections  []Section
}

// Ranges returns the first and last line of every block in lines. A block
// runs from a line matching Start to the line before the next one, or to the
// first line matching End. Blocks without an End line are dropped.
func (b *Block) Ranges(lines []string) [][2]int {
	var starts []int
	for i, line := range lines {
		if b.Start.MatchString(line) {
			starts = append(starts, i)
		}
	}
	var ranges [][2]int
	for i, start := range starts {
		end := len(lines) - 1
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		if b.End != nil {
			found := -1
			for j := start; j <= end; j++ {
				if b.End.MatchString(lines[j]) {
					found = j
					break
				}
			}
			if found < 0 {
				continue
			}
			end = found
		}
		if b.MaxSize > 0 {
			end = min(end, start+b.MaxSize-1)
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// DocumentType recognizes one kind of document.
type DocumentType struct {
	Name           string
	MustInclude    []*regexp.Regexp
	MustNotInclude []*regexp.Regexp
	// Context sections are matched over the whole document. Their values
	// are the defaults of every block.
	Context []Section
	Blocks  []Block
}

// Matches reports whether text contains every MustInclude pattern and none
// of the MustNotInclude ones.
func (d *DocumentType) Matches(text string) bool {
	for _, p := range d.MustInclude {
		if !p.MatchString(text) {
			return false
		}
	}
	for _, p := range d.MustNotInclude {
		if p.MatchString(text) {
			return false
		}
	}
	return true
}

// Lines splits text into lines, accepting both line endings.
func Lines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
