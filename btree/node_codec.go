package btree

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"juicydb/types"
)

// encodeNode serializes a node to its exact 4096-byte page image.
// Layout (both kinds):
//   - byte 0: kind tag, 0x00 internal / 0x01 leaf
//   - bytes 1..1+cap: free-slot flags, one byte per slot, 0x00 free / 0x01 occupied
//   - bytes 1792..1792+cap: slot directory, one byte per logical rank
//   - bytes 2048..: cell storage at fixed physical slot offsets
//
// Internal cells are 8 bytes (big-endian key + child page id); leaf cells
// are 32-byte slots holding a big-endian key and the encoded row.
func encodeNode(node *Node, schema types.Schema) ([]byte, error) {
	page := make([]byte, PageSize)

	if node.kind == NodeInternal {
		page[0] = tagInternal
	} else {
		page[0] = tagLeaf
	}

	for i, occ := range node.occupied {
		if occ {
			page[flagsOffset+i] = 0x01
		}
	}

	for rank, slot := range node.dir {
		page[dirOffset+rank] = slot
	}

	if node.kind == NodeInternal {
		for i, cell := range node.keyCells {
			if !node.occupied[i] {
				continue
			}
			off := cellsOffset + i*keyCellSize
			binary.BigEndian.PutUint32(page[off:], cell.Key)
			binary.BigEndian.PutUint32(page[off+4:], cell.Child)
		}
		return page, nil
	}

	for i, cell := range node.dataCells {
		if !node.occupied[i] {
			continue
		}
		off := cellsOffset + i*leafSlotSize
		binary.BigEndian.PutUint32(page[off:], cell.Key)
		rowBytes, err := encodeRow(cell.Row, schema)
		if err != nil {
			return nil, errors.Wrapf(err, "slot %d", i)
		}
		copy(page[off+4:off+leafSlotSize], rowBytes)
	}
	return page, nil
}

// decodeNode is the structural inverse of encodeNode:
// decode(encode(node)) == node for any well-formed node.
func decodeNode(page []byte, schema types.Schema) (*Node, error) {
	if len(page) != PageSize {
		return nil, errors.Wrapf(ErrCorruptPage, "page size %d, want %d", len(page), PageSize)
	}

	var node *Node
	switch page[0] {
	case tagInternal:
		node = NewNode(NodeInternal)
	case tagLeaf:
		node = NewNode(NodeLeaf)
	default:
		return nil, errors.Wrapf(ErrCorruptPage, "invalid kind tag 0x%02x", page[0])
	}

	count := 0
	for i := range node.occupied {
		switch page[flagsOffset+i] {
		case 0x00:
		case 0x01:
			node.occupied[i] = true
			count++
		default:
			return nil, errors.Wrapf(ErrCorruptPage, "invalid free-slot flag 0x%02x at slot %d", page[flagsOffset+i], i)
		}
	}

	if count > 0 {
		node.dir = make([]uint8, count)
	}
	seen := make([]bool, node.capacity())
	for rank := 0; rank < count; rank++ {
		slot := page[dirOffset+rank]
		if int(slot) >= node.capacity() || !node.occupied[slot] || seen[slot] {
			return nil, errors.Wrapf(ErrCorruptPage, "slot directory rank %d references slot %d", rank, slot)
		}
		seen[slot] = true
		node.dir[rank] = slot
	}

	if node.kind == NodeInternal {
		for i := range node.keyCells {
			if !node.occupied[i] {
				continue
			}
			off := cellsOffset + i*keyCellSize
			node.keyCells[i] = KeyCell{
				Key:   binary.BigEndian.Uint32(page[off:]),
				Child: binary.BigEndian.Uint32(page[off+4:]),
			}
		}
		return node, nil
	}

	for i := range node.dataCells {
		if !node.occupied[i] {
			continue
		}
		off := cellsOffset + i*leafSlotSize
		key := binary.BigEndian.Uint32(page[off:])
		row, err := decodeRow(page[off+4:off+leafSlotSize], schema)
		if err != nil {
			return nil, errors.Wrapf(err, "slot %d", i)
		}
		node.dataCells[i] = DataCell{Key: key, Row: row}
	}
	return node, nil
}
