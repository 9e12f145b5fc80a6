package sortpar

import (
	"cmp"
	"strings"
	"unicode/utf8"
)

// naturalCompare orders a and b so that runs of ASCII digits compare by their
// numeric value rather than character by character: "item2" < "item10".
// Digit runs that differ only in leading zeros compare equal.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			var da, db string
			da, a = splitDigits(a)
			db, b = splitDigits(b)
			if c := compareDigitRuns(da, db); c != 0 {
				return c
			}
			continue
		}

		ra, sa := utf8.DecodeRuneInString(a)
		rb, sb := utf8.DecodeRuneInString(b)
		if ra != rb {
			return cmp.Compare(ra, rb)
		}
		a, b = a[sa:], b[sb:]
	}
	// at most one side has text left, the shorter one sorts first
	return cmp.Compare(len(a), len(b))
}

// splitDigits splits s after its leading run of ASCII digits
func splitDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareDigitRuns compares two digit strings of arbitrary length by value
func compareDigitRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
