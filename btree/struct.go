// Structure of the on-disk B-tree
/*
Table file
 ├── Page 0: header (magic, root page id, schema)
 └── Pages 1..N: one node per 4096-byte page
        Internal: 256 key cells (rank 0 is the child-only low sentinel)
        Leaf:     64 data cells (key + encoded row)

- slot directory: logical rank -> physical slot, keys ascending by rank
- free-slot flags: one byte per slot, lowest free slot is allocated first
- all leaves at the same depth; the root grows only via root splits
*/
package btree

import (
	"go.uber.org/zap"

	"juicydb/types"
)

type NodeKind int

const (
	NodeInternal NodeKind = iota
	NodeLeaf
)

// Key and PageID are both unsigned 32-bit on disk. Page 0 is the header,
// so valid node page ids start at 1.
type (
	Key    = uint32
	PageID = uint32
)

const (
	PageSize = 4096 // in bytes (4KB)

	InternalCapacity = 256 // key cells per internal node, incl. the low sentinel
	LeafCapacity     = 64  // data cells per leaf node

	flagsOffset = 1    // free-slot flags follow the kind tag
	dirOffset   = 1792 // slot directory: one byte per logical rank
	cellsOffset = 2048 // cell storage area

	keyCellSize  = 8                                         // key(4) + child(4)
	leafSlotSize = (PageSize - cellsOffset) / LeafCapacity   // 32 bytes
	MaxRowSize   = leafSlotSize - 4                          // slot minus the key

	tagInternal = 0x00
	tagLeaf     = 0x01
)

// KeyCell is an internal node entry: a separator key and the page id of the
// child holding keys >= Key (below the next separator). The cell at rank 0
// is the low sentinel: its key bytes are zero and never consulted.
type KeyCell struct {
	Key   Key
	Child PageID
}

// DataCell is a leaf entry: the key and its row.
type DataCell struct {
	Key Key
	Row types.Row
}

// Node is the in-memory form of one page. Cell storage is addressed by
// physical slot; the directory establishes key order without moving cells.
type Node struct {
	kind      NodeKind
	occupied  []bool     // one flag per physical slot
	dir       []uint8    // logical rank -> physical slot, len == live cell count
	keyCells  []KeyCell  // internal nodes, len InternalCapacity
	dataCells []DataCell // leaf nodes, len LeafCapacity
}

// BTree owns the table file and keeps the root node resident. All other
// nodes are decoded on demand and written back after mutation. A BTree
// value must not be shared across goroutines; the engine assumes a single
// in-flight operation per file.
type BTree struct {
	pager  Pager
	schema types.Schema
	rootID PageID
	root   *Node
	log    *zap.Logger
}

// Schema returns the table's column layout.
func (t *BTree) Schema() types.Schema {
	return t.schema
}

// SetLogger replaces the tree's logger (zap.NewNop by default).
func (t *BTree) SetLogger(log *zap.Logger) {
	if log != nil {
		t.log = log
	}
}

// NewNode creates an empty node of the given kind.
func NewNode(kind NodeKind) *Node {
	n := &Node{kind: kind}
	if kind == NodeInternal {
		n.occupied = make([]bool, InternalCapacity)
		n.keyCells = make([]KeyCell, InternalCapacity)
	} else {
		n.occupied = make([]bool, LeafCapacity)
		n.dataCells = make([]DataCell, LeafCapacity)
	}
	return n
}

func (n *Node) capacity() int {
	if n.kind == NodeInternal {
		return InternalCapacity
	}
	return LeafCapacity
}

// count is the number of live cells (the directory length).
func (n *Node) count() int {
	return len(n.dir)
}
