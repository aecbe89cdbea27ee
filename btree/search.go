package btree

import "juicydb/types"

// Lookup returns the row stored under key. ok is false when the key is
// absent; an absent key is not an error.
func (t *BTree) Lookup(key Key) (row types.Row, ok bool, err error) {
	leaf, _, _, err := t.findLeaf(key)
	if err != nil {
		return nil, false, err
	}
	rank, found := leaf.leafRankOf(key)
	if !found {
		return nil, false, nil
	}
	return leaf.dataCells[leaf.dir[rank]].Row, true, nil
}
