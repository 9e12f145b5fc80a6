package sortpar

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// generalNumeric returns the value of the longest floating point prefix of s,
// after any leading whitespace. Text without a numeric prefix and NaN both
// evaluate to 0 so that every unparseable line sorts as equal.
func generalNumeric(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	prefix := floatPrefix(s)
	if prefix == "" {
		return 0
	}
	// strconv requires a binary exponent on hexadecimal floats
	if isHexFloat(prefix) && !strings.ContainsAny(prefix, "pP") {
		prefix += "p0"
	}
	// out of range values come back as ±Inf or 0 along with ErrRange, which is what we want
	f, _ := strconv.ParseFloat(prefix, 64)
	if math.IsNaN(f) {
		return 0
	}
	return f
}

// floatPrefix returns the longest prefix of s that is a decimal or
// hexadecimal number, infinity or NaN.
func floatPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if n := hexPrefix(s[i:]); n > 0 {
		return s[:i+n]
	}

	for _, word := range []string{"infinity", "inf", "nan"} {
		if len(s)-i >= len(word) && strings.EqualFold(s[i:i+len(word)], word) {
			return s[:i+len(word)]
		}
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return ""
	}
	end := i

	// the exponent only counts when followed by at least one digit
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i > expStart {
			end = i
		}
	}
	return s[:end]
}

// hexPrefix returns the length of the hexadecimal float at the start of s,
// such as 0x1A, 0x1.8 or 0x1p-2, or 0 when s does not start with one
func hexPrefix(s string) int {
	if len(s) < 2 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return 0
	}
	i := 2
	digits := 0
	for i < len(s) && isHexDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isHexDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	end := i

	if i < len(s) && (s[i] == 'p' || s[i] == 'P') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expStart := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i > expStart {
			end = i
		}
	}
	return end
}

func isHexFloat(prefix string) bool {
	prefix = strings.TrimLeft(prefix, "+-")
	return len(prefix) > 1 && prefix[0] == '0' && (prefix[1] == 'x' || prefix[1] == 'X')
}

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
