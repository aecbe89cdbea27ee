package btree

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"juicydb/types"
)

var testSchema = types.Schema{
	{Name: "id", Type: types.Integer},
	{Name: "name", Type: types.Text},
}

func testRow(id int64, name string) types.Row {
	return types.Row{types.NewInteger(id), types.NewText(name)}
}

func TestLeafRoundTrip(t *testing.T) {
	node := NewNode(NodeLeaf)
	for i, key := range []Key{10, 5, 20} {
		slot, ok := node.takeFreeSlot()
		require.True(t, ok)
		require.Equal(t, uint8(i), slot)
		node.dataCells[slot] = DataCell{Key: key, Row: testRow(int64(key), "row")}
	}
	// key order 5, 10, 20 over slots 1, 0, 2
	node.dir = []uint8{1, 0, 2}

	page, err := encodeNode(node, testSchema)
	require.NoError(t, err)
	require.Len(t, page, PageSize)
	require.Equal(t, byte(tagLeaf), page[0])

	decoded, err := decodeNode(page, testSchema)
	require.NoError(t, err)
	require.True(t, reflect.DeepEqual(node, decoded))
}

func TestInternalRoundTrip(t *testing.T) {
	node := NewNode(NodeInternal)
	cells := []KeyCell{{Key: 0, Child: 1}, {Key: 100, Child: 2}, {Key: 200, Child: 3}}
	for _, cell := range cells {
		slot, ok := node.takeFreeSlot()
		require.True(t, ok)
		node.keyCells[slot] = cell
		node.dir = append(node.dir, slot)
	}

	page, err := encodeNode(node, testSchema)
	require.NoError(t, err)
	require.Equal(t, byte(tagInternal), page[0])

	decoded, err := decodeNode(page, testSchema)
	require.NoError(t, err)
	require.True(t, reflect.DeepEqual(node, decoded))
}

func TestEmptyNodeRoundTrip(t *testing.T) {
	for _, kind := range []NodeKind{NodeInternal, NodeLeaf} {
		node := NewNode(kind)
		page, err := encodeNode(node, testSchema)
		require.NoError(t, err)
		decoded, err := decodeNode(page, testSchema)
		require.NoError(t, err)
		require.True(t, reflect.DeepEqual(node, decoded))
	}
}

func TestDecodeInvalidKindTag(t *testing.T) {
	page := make([]byte, PageSize)
	page[0] = 0x02
	_, err := decodeNode(page, testSchema)
	require.ErrorIs(t, err, ErrCorruptPage)
}

func TestDecodeInvalidFreeSlotFlag(t *testing.T) {
	node := NewNode(NodeLeaf)
	page, err := encodeNode(node, testSchema)
	require.NoError(t, err)

	page[flagsOffset+3] = 0x7f
	_, err = decodeNode(page, testSchema)
	require.ErrorIs(t, err, ErrCorruptPage)
}

func TestDecodeBadSlotDirectory(t *testing.T) {
	node := NewNode(NodeLeaf)
	slot, _ := node.takeFreeSlot()
	node.dataCells[slot] = DataCell{Key: 1, Row: testRow(1, "a")}
	node.dir = []uint8{slot}

	page, err := encodeNode(node, testSchema)
	require.NoError(t, err)

	// Point the directory at a free slot.
	page[dirOffset] = 9
	_, err = decodeNode(page, testSchema)
	require.ErrorIs(t, err, ErrCorruptPage)
}

func TestRowCodecRoundTrip(t *testing.T) {
	row := testRow(-42, "juicy")
	b, err := encodeRow(row, testSchema)
	require.NoError(t, err)
	require.LessOrEqual(t, len(b), MaxRowSize)

	decoded, err := decodeRow(padSlot(b), testSchema)
	require.NoError(t, err)
	require.True(t, row.Equal(decoded))
}

func TestRowTooLarge(t *testing.T) {
	row := testRow(1, "this text is far too long to fit inside one leaf slot")
	_, err := encodeRow(row, testSchema)
	require.ErrorIs(t, err, ErrRowTooLarge)
}

func TestRowTypeMismatch(t *testing.T) {
	row := types.Row{types.NewText("not an int"), types.NewText("x")}
	_, err := encodeRow(row, testSchema)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrRowTooLarge))
}

// padSlot zero-pads encoded row bytes to the slot's row area, as they
// appear on a page.
func padSlot(b []byte) []byte {
	out := make([]byte, MaxRowSize)
	copy(out, b)
	return out
}

func TestHeaderRoundTrip(t *testing.T) {
	page, err := encodeHeader(7, testSchema)
	require.NoError(t, err)

	rootID, schema, err := decodeHeader(page)
	require.NoError(t, err)
	require.Equal(t, PageID(7), rootID)
	require.Equal(t, testSchema, schema)
}

func TestHeaderBadMagic(t *testing.T) {
	page, err := encodeHeader(1, testSchema)
	require.NoError(t, err)
	page[0] = 'X'
	_, _, err = decodeHeader(page)
	require.ErrorIs(t, err, ErrCorruptPage)
}
