package btree

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// InspectTableFile opens a table file and prints its structure to stdout.
func InspectTableFile(path string) error {
	return InspectTableFileTo(os.Stdout, path)
}

// InspectTableFileTo writes a human-readable dump of the table file to w:
// the header page's schema and root id, then each node level by level.
func InspectTableFileTo(w io.Writer, path string) error {
	t, err := Open(path)
	if err != nil {
		return err
	}
	defer t.Close()

	p := func(format string, args ...interface{}) { fmt.Fprintf(w, format, args...) }

	p("Table file: %s\n", path)
	p("  Page 0 (header): root page id = %d\n", t.rootID)
	for _, col := range t.schema {
		p("    column %s %s\n", col.Name, col.Type)
	}

	p("\n  Nodes (BFS):\n  ---\n")

	queue := []PageID{t.rootID}
	level := 0
	for len(queue) > 0 {
		size := len(queue)
		p("  Level %d:\n", level)
		for i := 0; i < size; i++ {
			id := queue[i]
			node, err := t.readNode(id)
			if err != nil {
				return errors.Wrapf(err, "page %d", id)
			}

			if node.kind == NodeInternal {
				p("    [page %d] INTERNAL cells=%d\n", id, node.count())
				for rank := 0; rank < node.count(); rank++ {
					cell := node.keyCells[node.dir[rank]]
					if rank == 0 {
						p("      (sentinel) -> page %d\n", cell.Child)
					} else {
						p("      %d -> page %d\n", cell.Key, cell.Child)
					}
					queue = append(queue, cell.Child)
				}
			} else {
				p("    [page %d] LEAF cells=%d\n", id, node.count())
				for rank := 0; rank < node.count(); rank++ {
					cell := node.dataCells[node.dir[rank]]
					p("      %d -> %v\n", cell.Key, cell.Row)
				}
			}
		}
		p("  ---\n")
		queue = queue[size:]
		level++
	}
	return nil
}
