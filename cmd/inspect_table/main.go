// Inspect a table file: header schema plus every node, level by level.
// Usage: go run ./cmd/inspect_table <path-to-.tbl>
// Example: go run ./cmd/inspect_table data/students.tbl
package main

import (
	"fmt"
	"os"

	"juicydb/btree"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <table.tbl>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s data/students.tbl\n", os.Args[0])
		os.Exit(1)
	}
	path := os.Args[1]
	if err := btree.InspectTableFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
