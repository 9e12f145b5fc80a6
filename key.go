package sortpar

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// Strategy selects how two filtered lines are ordered.
type Strategy int

const (
	// Lexicographic compares lines byte by byte
	Lexicographic Strategy = iota
	// GeneralNumeric compares the floating point value at the start of each line
	GeneralNumeric
	// NaturalOrder compares embedded digit runs by numeric value
	NaturalOrder
	// VersionOrder compares lines as versions, falling back to NaturalOrder
	// for any pair where either line is not a version
	VersionOrder
)

var strategyNames = map[Strategy]string{
	Lexicographic:  "lexicographic",
	GeneralNumeric: "general-numeric",
	NaturalOrder:   "human-numeric",
	VersionOrder:   "version",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the Strategy with the given name as returned by
// Strategy.String. "natural" is accepted as an alias for NaturalOrder.
func ParseStrategy(name string) (Strategy, error) {
	if strings.EqualFold(name, "natural") {
		return NaturalOrder, nil
	}
	for s, n := range strategyNames {
		if strings.EqualFold(name, n) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown sort strategy %q", name)
}

// SortKey is the comparable form of a filtered line.
// Only the fields used by the strategy it was built for are set.
type SortKey struct {
	// Text is the filtered line
	Text string
	// Number is the general numeric value of Text
	Number float64
	// Version is Text parsed as a version, nil if it is not one
	Version *version.Version
}

// KeyOf builds the SortKey of an already filtered line for strategy.
// Malformed input never fails: unparseable numbers become 0 and
// unparseable versions leave Version nil.
func KeyOf(filtered string, strategy Strategy) SortKey {
	k := SortKey{Text: filtered}
	switch strategy {
	case GeneralNumeric:
		k.Number = generalNumeric(filtered)
	case VersionOrder:
		if v, err := version.NewVersion(filtered); err == nil {
			k.Version = v
		}
	}
	return k
}

// CompareKeys compares two keys built for strategy.
// It returns a negative number when a sorts before b, a positive number when
// a sorts after b and zero when they are equal.
func CompareKeys(a, b SortKey, strategy Strategy) int {
	switch strategy {
	case GeneralNumeric:
		return cmp.Compare(a.Number, b.Number)
	case NaturalOrder:
		return naturalCompare(a.Text, b.Text)
	case VersionOrder:
		if a.Version != nil && b.Version != nil {
			return a.Version.Compare(b.Version)
		}
		return naturalCompare(a.Text, b.Text)
	default:
		return strings.Compare(a.Text, b.Text)
	}
}
