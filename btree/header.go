package btree

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"

	"juicydb/types"
)

// Header page (page 0) layout:
//   - bytes 0..4:  magic "JDB1"
//   - bytes 4..8:  root page id, big-endian
//   - bytes 8..10: column count, big-endian
//   - per column:  1 type tag byte (0x00 integer, 0x01 text),
//                  2-byte big-endian name length, name bytes
//   - rest of the page zero
var headerMagic = []byte("JDB1")

func encodeHeader(rootID PageID, schema types.Schema) ([]byte, error) {
	page := make([]byte, PageSize)
	copy(page[0:4], headerMagic)
	binary.BigEndian.PutUint32(page[4:8], rootID)
	binary.BigEndian.PutUint16(page[8:10], uint16(len(schema)))

	offset := 10
	for _, col := range schema {
		need := 1 + 2 + len(col.Name)
		if offset+need > PageSize {
			return nil, errors.Errorf("schema does not fit in header page (%d columns)", len(schema))
		}
		switch col.Type {
		case types.Integer:
			page[offset] = 0x00
		case types.Text:
			page[offset] = 0x01
		default:
			return nil, errors.Errorf("column %s: unknown type %d", col.Name, col.Type)
		}
		offset++
		binary.BigEndian.PutUint16(page[offset:], uint16(len(col.Name)))
		offset += 2
		copy(page[offset:], col.Name)
		offset += len(col.Name)
	}
	return page, nil
}

func decodeHeader(page []byte) (PageID, types.Schema, error) {
	if len(page) != PageSize {
		return 0, nil, errors.Wrapf(ErrCorruptPage, "header page size %d", len(page))
	}
	if !bytes.Equal(page[0:4], headerMagic) {
		return 0, nil, errors.Wrapf(ErrCorruptPage, "bad header magic %q", page[0:4])
	}

	rootID := binary.BigEndian.Uint32(page[4:8])
	numCols := int(binary.BigEndian.Uint16(page[8:10]))

	schema := make(types.Schema, 0, numCols)
	offset := 10
	for i := 0; i < numCols; i++ {
		if offset+3 > PageSize {
			return 0, nil, errors.Wrapf(ErrCorruptPage, "header truncated at column %d", i)
		}
		var colType types.DBType
		switch page[offset] {
		case 0x00:
			colType = types.Integer
		case 0x01:
			colType = types.Text
		default:
			return 0, nil, errors.Wrapf(ErrCorruptPage, "column %d: invalid type tag 0x%02x", i, page[offset])
		}
		offset++
		nameLen := int(binary.BigEndian.Uint16(page[offset:]))
		offset += 2
		if offset+nameLen > PageSize {
			return 0, nil, errors.Wrapf(ErrCorruptPage, "column %d: name length %d overruns page", i, nameLen)
		}
		schema = append(schema, types.Column{
			Name: string(page[offset : offset+nameLen]),
			Type: colType,
		})
		offset += nameLen
	}
	return rootID, schema, nil
}

// saveHeader rewrites page 0 with the current root id and schema.
func (t *BTree) saveHeader() error {
	page, err := encodeHeader(t.rootID, t.schema)
	if err != nil {
		return err
	}
	return t.pager.WritePage(0, page)
}
