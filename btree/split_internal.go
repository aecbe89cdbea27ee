package btree

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// splitInternal splits a full internal node around its middle separator.
// The middle cell's key moves up to the parent; its child becomes the new
// right node's low sentinel, so both halves keep the sentinel convention.
func (t *BTree) splitInternal(id PageID, n *Node, rank int, promo *promotion) (*promotion, error) {
	entries := make([]KeyCell, 0, InternalCapacity+1)
	for _, slot := range n.dir {
		entries = append(entries, n.keyCells[slot])
	}
	entries = append(entries, KeyCell{})
	copy(entries[rank+1:], entries[rank:])
	entries[rank] = KeyCell{Key: promo.key, Child: promo.right}

	if len(entries) != InternalCapacity+1 {
		return nil, errors.Wrapf(ErrCapacityExceeded, "internal node with %d cells", len(entries))
	}

	mid := len(entries) / 2
	promoted := entries[mid]

	left := buildInternal(entries[:mid])
	rightEntries := make([]KeyCell, 0, len(entries)-mid)
	rightEntries = append(rightEntries, KeyCell{Key: 0, Child: promoted.Child})
	rightEntries = append(rightEntries, entries[mid+1:]...)
	right := buildInternal(rightEntries)

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

	t.log.Debug("internal split",
		zap.Uint32("page", id),
		zap.Uint32("right", rightID),
		zap.Uint32("separator", promoted.Key))
	return &promotion{key: promoted.Key, right: rightID}, nil
}

func buildInternal(entries []KeyCell) *Node {
	n := NewNode(NodeInternal)
	for i, e := range entries {
		n.keyCells[i] = e
		n.occupied[i] = true
		n.dir = append(n.dir, uint8(i))
	}
	return n
}
