package sortpar

// Compare orders two raw lines under sc: both are filtered, turned into keys
// and compared by the configured strategy. With sc.Reverse the operands are
// swapped before comparing. Compare is pure and safe for concurrent use.
func Compare(a, b string, sc SortConfig) int {
	return sc.compareKeys(sc.keyOf(a), sc.keyOf(b))
}

func (sc SortConfig) compareKeys(a, b SortKey) int {
	if sc.Reverse {
		a, b = b, a
	}
	return CompareKeys(a, b, sc.Strategy)
}

// keyOf filters line and builds its key
func (sc SortConfig) keyOf(line string) SortKey {
	return KeyOf(ApplyFilters(line, sc.Filters), sc.Strategy)
}
