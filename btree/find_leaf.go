package btree

// childRankFor picks the child to descend into: the rank with the largest
// separator key <= target, or the low-sentinel rank 0 when the target is
// below every stored separator. Ranks >= 1 hold real separators.
func (n *Node) childRankFor(key Key) int {
	lo, hi := 1, n.count()
	for lo < hi {
		mid := lo + (hi-lo)/2
		if n.keyAtRank(mid) <= key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	// lo is the first rank with separator > key
	return lo - 1
}

// leafLowerBound returns the first rank in a leaf whose key is >= target.
func (n *Node) leafLowerBound(key Key) int {
	lo, hi := 0, n.count()
	for lo < hi {
		mid := lo + (hi-lo)/2
		if n.keyAtRank(mid) < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// leafRankOf binary-searches a leaf's directory for an exact key match.
func (n *Node) leafRankOf(key Key) (int, bool) {
	rank := n.leafLowerBound(key)
	if rank < n.count() && n.keyAtRank(rank) == key {
		return rank, true
	}
	return rank, false
}

// findLeaf descends from the root to the leaf whose key range contains
// key. It also reports the smallest separator above the descent path:
// every key >= that separator lives in a later leaf, which is what the
// scan iterator re-descends with. hasBound is false on the rightmost path.
func (t *BTree) findLeaf(key Key) (leaf *Node, bound Key, hasBound bool, err error) {
	node := t.root
	for node.kind == NodeInternal {
		rank := node.childRankFor(key)
		if rank+1 < node.count() {
			bound = node.keyAtRank(rank + 1)
			hasBound = true
		}
		child := node.keyCells[node.dir[rank]].Child
		node, err = t.readNode(child)
		if err != nil {
			return nil, 0, false, err
		}
	}
	return node, bound, hasBound, nil
}
