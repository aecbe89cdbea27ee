package btree

// Delete removes the row stored under key from its leaf: the slot's
// occupied flag is cleared and its directory entry removed, so the slot is
// reused by a later insert before any fresh slot. Returns false when the
// key is absent. Nodes are never merged or reclaimed; separator keys for
// vanished ranges route to empty regions harmlessly.
func (t *BTree) Delete(key Key) (bool, error) {
	node := t.root
	id := t.rootID
	for node.kind == NodeInternal {
		rank := node.childRankFor(key)
		id = node.keyCells[node.dir[rank]].Child
		var err error
		node, err = t.readNode(id)
		if err != nil {
			return false, err
		}
	}

	rank, found := node.leafRankOf(key)
	if !found {
		return false, nil
	}
	node.removeRank(rank)
	if err := t.writeNode(id, node); err != nil {
		return false, err
	}
	return true, nil
}
