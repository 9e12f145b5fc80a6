package sortpar

import "runtime"

// SortConfig describes how lines are ordered. It is read only once sorting starts.
type SortConfig struct {
	Filters  []Filter // applied to each line in order before comparing
	Strategy Strategy // how filtered lines are compared
	Reverse  bool     // sort in descending order
	Stable   bool     // keep the input order of lines that compare equal
	Unique   bool     // drop exact duplicate lines, keeping the first seen
}

// Config holds execution settings for the sort
type Config struct {
	NumWorkers   int // maximum number of goroutines used to build keys and sort chunks
	MinChunkSize int // lines below which a chunk is not split further between workers
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		NumWorkers:   runtime.GOMAXPROCS(0),
		MinChunkSize: 1024,
	}
}

// mergeConfig takes a provided config and replaces any values not set with the defaults
func mergeConfig(c *Config) *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	merged := *c
	if merged.NumWorkers < 1 {
		merged.NumWorkers = d.NumWorkers
	}
	if merged.MinChunkSize < 1 {
		merged.MinChunkSize = d.MinChunkSize
	}
	return &merged
}
