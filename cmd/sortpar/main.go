// Command sortpar sorts the lines of its input files using every CPU.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sortpar: %v\n", err)
		os.Exit(1)
	}
}
