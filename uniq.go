package sortpar

// Uniq removes exact duplicate lines, keeping the first occurrence of each in
// input order. The slice is compacted in place and the shortened slice is returned.
// Equality is on the raw text, independent of any filter or strategy, so lines
// that only compare equal are all kept.
func Uniq(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	n := 0
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		lines[n] = line
		n++
	}
	clear(lines[n:])
	return lines[:n]
}
