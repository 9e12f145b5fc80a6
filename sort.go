// Package sortpar implements an in-memory parallel sort for lines of text.
//
// Lines are ordered by a SortConfig: an ordered list of filters that
// normalize each line for comparison, a comparison strategy, and the
// reverse, stable and unique switches. Each line is filtered and turned into
// a SortKey once, the keys are split into chunks that are sorted
// concurrently, and the sorted chunks are merged with a priority queue.
// The sorted output never depends on the number of workers.
package sortpar

import (
	"cmp"
	"slices"

	"github.com/lanrat/sortpar/queue"

	"golang.org/x/sync/errgroup"
)

// entry pairs the key of a line with its position in the input
type entry struct {
	key   SortKey
	index int
}

// chunk is a contiguous range of entries sorted by a single worker
type chunk struct {
	data   []entry
	offset int // index of data[0] in the input
}

// cursor is the next unmerged entry of a sorted chunk
type cursor struct {
	chunk int
	pos   int
}

// Sorter orders lines according to a SortConfig using multiple goroutines.
// A Sorter holds no state between calls and may be used concurrently.
type Sorter struct {
	sc     SortConfig
	config Config
}

// New returns a Sorter for sc.
// config can be nil to use the defaults, or only set the non-default values desired.
func New(sc SortConfig, config *Config) *Sorter {
	return &Sorter{
		sc:     sc,
		config: *mergeConfig(config),
	}
}

// Sort orders lines according to sc using the default Config.
// See Sorter.Sort.
func Sort(lines []string, sc SortConfig) []string {
	return New(sc, nil).Sort(lines)
}

// SortWithConfig is like Sort with explicit execution settings.
func SortWithConfig(lines []string, sc SortConfig, config *Config) []string {
	return New(sc, config).Sort(lines)
}

// Sort orders lines in place and returns them. The returned slice shares
// the backing array of lines and is shorter than lines only when duplicates
// were dropped because the config asked for unique lines.
// Sorting never fails: malformed numbers and versions get a fallback order.
func (s *Sorter) Sort(lines []string) []string {
	if s.sc.Unique {
		lines = Uniq(lines)
	}
	if len(lines) < 2 {
		return lines
	}

	entries := make([]entry, len(lines))
	chunks := s.buildChunks(entries)

	// build the keys and sort each chunk on its own worker
	var g errgroup.Group
	for _, c := range chunks {
		g.Go(func() error {
			for j := range c.data {
				i := c.offset + j
				c.data[j] = entry{key: s.sc.keyOf(lines[i]), index: i}
			}
			s.sortChunk(c)
			return nil
		})
	}
	_ = g.Wait() // workers do not return errors

	order := entries
	if len(chunks) > 1 {
		order = s.mergeChunks(chunks, len(entries))
	}

	sorted := make([]string, len(lines))
	for i, e := range order {
		sorted[i] = lines[e.index]
	}
	copy(lines, sorted)
	return lines
}

// buildChunks splits entries into one contiguous chunk per worker.
// Every chunk but the last has the same length, and no chunk is smaller than
// MinChunkSize unless there are fewer entries than that.
func (s *Sorter) buildChunks(entries []entry) []*chunk {
	n := len(entries)
	numChunks := min(s.config.NumWorkers, (n+s.config.MinChunkSize-1)/s.config.MinChunkSize)
	numChunks = max(numChunks, 1)
	size := (n + numChunks - 1) / numChunks

	chunks := make([]*chunk, 0, numChunks)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		chunks = append(chunks, &chunk{data: entries[start:end], offset: start})
	}
	return chunks
}

// sortChunk sorts the entries of c, keeping the input order of equal
// entries when the config is stable
func (s *Sorter) sortChunk(c *chunk) {
	compare := func(a, b entry) int {
		return s.sc.compareKeys(a.key, b.key)
	}
	if s.sc.Stable {
		slices.SortStableFunc(c.data, compare)
	} else {
		slices.SortFunc(c.data, compare)
	}
}

// mergeChunks performs a k-way merge of the sorted chunks.
// Equal entries from different chunks are taken from the lower chunk first,
// which holds the earlier input lines, so stability carries over from the chunk sorts.
func (s *Sorter) mergeChunks(chunks []*chunk, n int) []entry {
	pq := queue.NewPriorityQueueSize(func(a, b cursor) int {
		ea := chunks[a.chunk].data[a.pos]
		eb := chunks[b.chunk].data[b.pos]
		if c := s.sc.compareKeys(ea.key, eb.key); c != 0 {
			return c
		}
		return cmp.Compare(a.chunk, b.chunk)
	}, len(chunks))

	for i, c := range chunks {
		if len(c.data) > 0 {
			pq.Push(cursor{chunk: i})
		}
	}

	merged := make([]entry, 0, n)
	for pq.Len() > 0 {
		cur := pq.Peek()
		data := chunks[cur.chunk].data
		merged = append(merged, data[cur.pos])
		if cur.pos+1 < len(data) {
			pq.PeekUpdate(cursor{chunk: cur.chunk, pos: cur.pos + 1})
		} else {
			pq.Pop()
		}
	}
	return merged
}

// FirstDisorder returns the index of the first line that is out of order
// under sc, or -1 if lines are sorted. When sc.Unique is set a line that
// compares equal to the one before it is also out of order.
func FirstDisorder(lines []string, sc SortConfig) int {
	if len(lines) < 2 {
		return -1
	}
	prev := sc.keyOf(lines[0])
	for i := 1; i < len(lines); i++ {
		cur := sc.keyOf(lines[i])
		c := sc.compareKeys(prev, cur)
		if c > 0 || (sc.Unique && c == 0) {
			return i
		}
		prev = cur
	}
	return -1
}

// IsSorted reports whether lines are ordered under sc
func IsSorted(lines []string, sc SortConfig) bool {
	return FirstDisorder(lines, sc) < 0
}
