package sortpar

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
)

// Filter is a text transform applied to a line before it is compared.
// Filters never change what is written out, only how lines are ordered.
type Filter int

const (
	// StripLeadingBlanks removes whitespace from the start of the line.
	StripLeadingBlanks Filter = iota
	// DictionaryOrder removes every character that is not a letter, a number or whitespace.
	// Combining marks are kept with the letters they belong to.
	DictionaryOrder
	// CaseFold applies full Unicode case folding.
	CaseFold
)

var filterNames = map[Filter]string{
	StripLeadingBlanks: "leading-blanks",
	DictionaryOrder:    "dictionary",
	CaseFold:           "fold",
}

func (f Filter) String() string {
	if name, ok := filterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter returns the Filter with the given name as returned by Filter.String
func ParseFilter(name string) (Filter, error) {
	for f, n := range filterNames {
		if strings.EqualFold(name, n) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown filter %q", name)
}

// nonDictionary matches runes dropped by DictionaryOrder.
// Marks (\p{M}) include the vowel signs of scripts such as Devanagari and Thai.
// \s in RE2 is ASCII only, so the remaining unicode.IsSpace runes are listed explicitly.
var nonDictionary = regexp.MustCompile(`[^\p{L}\p{M}\p{N}\p{Z}\s\v\x{85}]+`)

// casers pools case folders, a cases.Caser holds state and may not be shared between goroutines
var casers = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// ApplyFilters runs line through filters in order, each filter consuming the
// output of the previous one. With no filters line is returned as is.
// ApplyFilters is safe for concurrent use.
func ApplyFilters(line string, filters []Filter) string {
	for _, f := range filters {
		line = applyFilter(line, f)
	}
	return line
}

func applyFilter(line string, f Filter) string {
	switch f {
	case StripLeadingBlanks:
		return strings.TrimLeftFunc(line, unicode.IsSpace)
	case DictionaryOrder:
		return nonDictionary.ReplaceAllLiteralString(line, "")
	case CaseFold:
		c := casers.Get().(*cases.Caser)
		defer casers.Put(c)
		return c.String(line)
	default:
		return line
	}
}
