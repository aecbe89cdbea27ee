package btree

import "juicydb/types"

// RowIterator is a lazy, forward-only range scan. The page format has no
// sibling pointers, so the iterator re-descends from the root with the
// next unvisited key to reach the following leaf; correctness over seek
// count at this engine's scale.
type RowIterator struct {
	tree    *BTree
	hi      Key
	cells   []DataCell // in-range cells of the current leaf, rank order
	index   int
	seek    Key
	hasSeek bool
	started bool
	err     error
}

// Scan returns an iterator over rows with keys in [lo, hi], ascending.
// The iterator is restartable from scratch via a new Scan call but not
// resumable mid-scan across calls.
func (t *BTree) Scan(lo, hi Key) *RowIterator {
	return &RowIterator{
		tree:    t,
		hi:      hi,
		seek:    lo,
		hasSeek: lo <= hi,
	}
}

// Next advances to the next row. Returns false when the range is
// exhausted or an error occurred; check Err after the loop.
func (it *RowIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.started {
		it.index++
	}
	it.started = true

	for it.index >= len(it.cells) {
		if !it.hasSeek {
			return false
		}
		if !it.loadLeaf() {
			return false
		}
	}
	return true
}

// loadLeaf descends to the leaf covering the current seek key and gathers
// its in-range cells. It arms the next seek from the descent's upper
// bound. Returns false when the scan is exhausted or failed.
func (it *RowIterator) loadLeaf() bool {
	leaf, bound, hasBound, err := it.tree.findLeaf(it.seek)
	if err != nil {
		it.err = err
		return false
	}

	it.cells = it.cells[:0]
	it.index = 0
	for rank := leaf.leafLowerBound(it.seek); rank < leaf.count(); rank++ {
		cell := leaf.dataCells[leaf.dir[rank]]
		if cell.Key > it.hi {
			it.hasSeek = false
			break
		}
		it.cells = append(it.cells, cell)
	}

	if it.hasSeek {
		if hasBound && bound <= it.hi {
			it.seek = bound
			it.hasSeek = true
		} else {
			it.hasSeek = false
		}
	}
	return len(it.cells) > 0 || it.hasSeek
}

// Key returns the current row's key.
func (it *RowIterator) Key() Key {
	return it.cells[it.index].Key
}

// Row returns the current row.
func (it *RowIterator) Row() types.Row {
	return it.cells[it.index].Row
}

// Err reports the first error the scan hit, if any.
func (it *RowIterator) Err() error {
	return it.err
}
