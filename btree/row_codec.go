package btree

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"juicydb/types"
)

// encodeRow serializes a row's values in schema column order: Integer as
// 8-byte big-endian two's complement, Text as a 2-byte big-endian length
// prefix followed by the bytes. The result must fit in a leaf slot.
func encodeRow(row types.Row, schema types.Schema) ([]byte, error) {
	if len(row) != len(schema) {
		return nil, errors.Errorf("row has %d values, schema has %d columns", len(row), len(schema))
	}

	buf := make([]byte, 0, MaxRowSize)
	for i, col := range schema {
		val := row[i]
		if val.Type != col.Type {
			return nil, errors.Errorf("column %s: value type %s, want %s", col.Name, val.Type, col.Type)
		}
		switch col.Type {
		case types.Integer:
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(val.Int))
			buf = append(buf, b[:]...)
		case types.Text:
			if len(val.Str) > MaxRowSize {
				return nil, errors.Wrapf(ErrRowTooLarge, "column %s: %d text bytes", col.Name, len(val.Str))
			}
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], uint16(len(val.Str)))
			buf = append(buf, b[:]...)
			buf = append(buf, val.Str...)
		}
	}

	if len(buf) > MaxRowSize {
		return nil, errors.Wrapf(ErrRowTooLarge, "%d bytes encoded (max %d)", len(buf), MaxRowSize)
	}
	return buf, nil
}

// decodeRow parses a leaf slot's row bytes in schema column order.
func decodeRow(b []byte, schema types.Schema) (types.Row, error) {
	row := make(types.Row, 0, len(schema))
	offset := 0

	for _, col := range schema {
		switch col.Type {
		case types.Integer:
			if offset+8 > len(b) {
				return nil, errors.Wrapf(ErrCorruptPage, "column %s: not enough bytes for integer", col.Name)
			}
			v := int64(binary.BigEndian.Uint64(b[offset:]))
			row = append(row, types.NewInteger(v))
			offset += 8
		case types.Text:
			if offset+2 > len(b) {
				return nil, errors.Wrapf(ErrCorruptPage, "column %s: not enough bytes for text length", col.Name)
			}
			strlen := int(binary.BigEndian.Uint16(b[offset:]))
			offset += 2
			if offset+strlen > len(b) {
				return nil, errors.Wrapf(ErrCorruptPage, "column %s: text length %d exceeds slot", col.Name, strlen)
			}
			row = append(row, types.NewText(string(b[offset:offset+strlen])))
			offset += strlen
		}
	}
	return row, nil
}
