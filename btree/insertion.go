package btree

import (
	"go.uber.org/zap"

	"juicydb/types"
)

// promotion carries a separator key and the new right sibling's page id up
// the recursion after a split. A nil promotion means the subtree absorbed
// the insert.
type promotion struct {
	key   Key
	right PageID
}

// Insert stores row under key. Inserting an existing key overwrites the
// previous row (last-writer-wins). A full leaf splits; splits propagate
// upward, and a root split grows the tree by exactly one level.
func (t *BTree) Insert(key Key, row types.Row) error {
	// Reject oversized or mistyped rows before touching any page.
	if _, err := encodeRow(row, t.schema); err != nil {
		return err
	}

	promo, err := t.insertInto(t.rootID, t.root, key, row)
	if err != nil {
		return err
	}
	if promo == nil {
		return nil
	}

	// The root itself split: allocate a new internal root with the old
	// root as the low-sentinel child and the new sibling to its right.
	newRootID, err := t.pager.AllocatePage()
	if err != nil {
		return err
	}
	newRoot := NewNode(NodeInternal)
	sentinel, _ := newRoot.takeFreeSlot()
	newRoot.keyCells[sentinel] = KeyCell{Key: 0, Child: t.rootID}
	newRoot.insertRank(0, sentinel)
	sep, _ := newRoot.takeFreeSlot()
	newRoot.keyCells[sep] = KeyCell{Key: promo.key, Child: promo.right}
	newRoot.insertRank(1, sep)

	if err := t.writeNode(newRootID, newRoot); err != nil {
		return err
	}
	t.rootID = newRootID
	t.root = newRoot
	if err := t.saveHeader(); err != nil {
		return err
	}

	t.log.Debug("root split",
		zap.Uint32("new_root", newRootID),
		zap.Uint32("separator", promo.key))
	return nil
}

func (t *BTree) insertInto(id PageID, n *Node, key Key, row types.Row) (*promotion, error) {
	if n.kind == NodeLeaf {
		return t.insertIntoLeaf(id, n, key, row)
	}

	rank := n.childRankFor(key)
	childID := n.keyCells[n.dir[rank]].Child
	child, err := t.readNode(childID)
	if err != nil {
		return nil, err
	}
	promo, err := t.insertInto(childID, child, key, row)
	if err != nil || promo == nil {
		return nil, err
	}
	return t.insertSeparator(id, n, promo)
}

func (t *BTree) insertIntoLeaf(id PageID, n *Node, key Key, row types.Row) (*promotion, error) {
	rank, found := n.leafRankOf(key)
	if found {
		n.dataCells[n.dir[rank]].Row = row
		return nil, t.writeNode(id, n)
	}

	if slot, ok := n.takeFreeSlot(); ok {
		n.dataCells[slot] = DataCell{Key: key, Row: row}
		n.insertRank(rank, slot)
		return nil, t.writeNode(id, n)
	}

	return t.splitLeaf(id, n, rank, key, row)
}

// splitLeaf allocates a new right leaf, keeps the lower half of the
// ordered cells (plus the new one, placed by key order) in the original
// page, and promotes the right page's smallest key.
func (t *BTree) splitLeaf(id PageID, n *Node, rank int, key Key, row types.Row) (*promotion, error) {
	entries := make([]DataCell, 0, LeafCapacity+1)
	for _, slot := range n.dir {
		entries = append(entries, n.dataCells[slot])
	}
	entries = append(entries, DataCell{})
	copy(entries[rank+1:], entries[rank:])
	entries[rank] = DataCell{Key: key, Row: row}

	mid := (len(entries) + 1) / 2
	left := buildLeaf(entries[:mid])
	right := buildLeaf(entries[mid:])

	rightID, err := t.pager.AllocatePage()
	if err != nil {
		return nil, err
	}
	if err := t.writeNode(rightID, right); err != nil {
		return nil, err
	}
	if err := t.writeNode(id, left); err != nil {
		return nil, err
	}
	if id == t.rootID {
		t.root = left
	}

	t.log.Debug("leaf split",
		zap.Uint32("page", id),
		zap.Uint32("right", rightID),
		zap.Uint32("separator", entries[mid].Key))
	return &promotion{key: entries[mid].Key, right: rightID}, nil
}

// insertSeparator adds a promoted separator cell to an internal node,
// splitting it when no free slot remains.
func (t *BTree) insertSeparator(id PageID, n *Node, promo *promotion) (*promotion, error) {
	rank := n.childRankFor(promo.key) + 1

	if slot, ok := n.takeFreeSlot(); ok {
		n.keyCells[slot] = KeyCell{Key: promo.key, Child: promo.right}
		n.insertRank(rank, slot)
		return nil, t.writeNode(id, n)
	}

	return t.splitInternal(id, n, rank, promo)
}

func buildLeaf(entries []DataCell) *Node {
	n := NewNode(NodeLeaf)
	for i, e := range entries {
		n.dataCells[i] = e
		n.occupied[i] = true
		n.dir = append(n.dir, uint8(i))
	}
	return n
}
