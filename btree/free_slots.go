package btree

// Free-slot directory operations. A cell lives in the lowest-indexed free
// physical slot; the slot directory holds key order separately, so an
// insert in the middle of the order only shifts directory bytes.

// takeFreeSlot returns the lowest-indexed free slot and marks it occupied.
func (n *Node) takeFreeSlot() (uint8, bool) {
	for i, occ := range n.occupied {
		if !occ {
			n.occupied[i] = true
			return uint8(i), true
		}
	}
	return 0, false
}

// full reports whether no free slot remains.
func (n *Node) full() bool {
	for _, occ := range n.occupied {
		if !occ {
			return false
		}
	}
	return true
}

// insertRank places slot at the given logical rank, shifting subsequent
// directory entries right by one.
func (n *Node) insertRank(rank int, slot uint8) {
	n.dir = append(n.dir, 0)
	copy(n.dir[rank+1:], n.dir[rank:])
	n.dir[rank] = slot
}

// removeRank deletes the directory entry at rank, compacting the
// directory (not the cell storage), and frees the slot it referenced.
func (n *Node) removeRank(rank int) {
	slot := n.dir[rank]
	n.dir = append(n.dir[:rank], n.dir[rank+1:]...)
	n.occupied[slot] = false
	if n.kind == NodeInternal {
		n.keyCells[slot] = KeyCell{}
	} else {
		n.dataCells[slot] = DataCell{}
	}
}

// keyAtRank returns the key of the cell at the given logical rank.
func (n *Node) keyAtRank(rank int) Key {
	if n.kind == NodeInternal {
		return n.keyCells[n.dir[rank]].Key
	}
	return n.dataCells[n.dir[rank]].Key
}
