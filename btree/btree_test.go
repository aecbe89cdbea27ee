package btree

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"juicydb/types"
)

func newTestTree(t *testing.T) *BTree {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.tbl")
	tree, err := Create(path, testSchema)
	require.NoError(t, err)
	t.Cleanup(func() { tree.Close() })
	return tree
}

func mustInsert(t *testing.T, tree *BTree, key Key) {
	t.Helper()
	err := tree.Insert(key, testRow(int64(key), fmt.Sprintf("row-%d", key)))
	require.NoError(t, err)
}

func requireLookup(t *testing.T, tree *BTree, key Key) {
	t.Helper()
	row, ok, err := tree.Lookup(key)
	require.NoError(t, err)
	require.True(t, ok, "key %d not found", key)
	require.Equal(t, int64(key), row[0].Int)
}

// collectKeys walks the whole tree in order via Scan.
func collectKeys(t *testing.T, tree *BTree) []Key {
	t.Helper()
	var keys []Key
	it := tree.Scan(0, ^Key(0))
	for it.Next() {
		keys = append(keys, it.Key())
	}
	require.NoError(t, it.Err())
	return keys
}

// leafDepths returns the depth of every leaf below the given page.
func leafDepths(t *testing.T, tree *BTree, id PageID, depth int, out *[]int) {
	t.Helper()
	node, err := tree.readNode(id)
	require.NoError(t, err)
	if node.kind == NodeLeaf {
		*out = append(*out, depth)
		return
	}
	require.LessOrEqual(t, node.count(), InternalCapacity)
	for rank := 0; rank < node.count(); rank++ {
		leafDepths(t, tree, node.keyCells[node.dir[rank]].Child, depth+1, out)
	}
}

func TestLeafOnlyTree(t *testing.T) {
	tree := newTestTree(t)

	for key := Key(1); key <= 64; key++ {
		mustInsert(t, tree, key)
	}

	require.Equal(t, NodeLeaf, tree.root.kind, "64 keys must fit in a leaf root")
	requireLookup(t, tree, 32)

	_, ok, err := tree.Lookup(65)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLeafSplitOnSixtyFifthInsert(t *testing.T) {
	tree := newTestTree(t)

	for key := Key(1); key <= 64; key++ {
		mustInsert(t, tree, key)
	}
	require.Equal(t, NodeLeaf, tree.root.kind)

	mustInsert(t, tree, 65)
	require.Equal(t, NodeInternal, tree.root.kind, "65th insert must split the root leaf")
	require.Equal(t, 2, tree.root.count(), "new root has the old root and one sibling")

	for key := Key(1); key <= 65; key++ {
		requireLookup(t, tree, key)
	}
}

func TestAscendingBulkInsert(t *testing.T) {
	tree := newTestTree(t)

	const total = InternalCapacity*LeafCapacity + 1 // 16385
	for key := Key(1); key <= total; key++ {
		mustInsert(t, tree, key)
	}

	// Height at least 2: the root's first child must itself be internal.
	require.Equal(t, NodeInternal, tree.root.kind)
	child, err := tree.readNode(tree.root.keyCells[tree.root.dir[0]].Child)
	require.NoError(t, err)
	require.Equal(t, NodeInternal, child.kind)

	// All leaves at the same depth, fanout bounds respected.
	var depths []int
	leafDepths(t, tree, tree.rootID, 0, &depths)
	for _, d := range depths {
		require.Equal(t, depths[0], d, "all leaves must share one depth")
	}

	// Spot lookups across the key space.
	for _, key := range []Key{1, 64, 65, 4096, 16000, total} {
		requireLookup(t, tree, key)
	}

	// In-order traversal yields strictly ascending keys, no duplicates.
	keys := collectKeys(t, tree)
	require.Len(t, keys, total)
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i])
	}
}

func TestDuplicateInsertOverwrites(t *testing.T) {
	tree := newTestTree(t)

	require.NoError(t, tree.Insert(7, testRow(7, "first")))
	require.NoError(t, tree.Insert(7, testRow(7, "second")))

	row, ok, err := tree.Lookup(7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second", row[1].Str)

	require.Len(t, collectKeys(t, tree), 1, "overwrite must leave a single cell")
}

func TestScanRange(t *testing.T) {
	tree := newTestTree(t)
	for _, key := range []Key{5, 10, 15, 20, 25} {
		mustInsert(t, tree, key)
	}

	var got []Key
	it := tree.Scan(10, 20)
	for it.Next() {
		got = append(got, it.Key())
	}
	require.NoError(t, it.Err())
	require.Equal(t, []Key{10, 15, 20}, got)
}

func TestScanAcrossLeaves(t *testing.T) {
	tree := newTestTree(t)
	for key := Key(1); key <= 200; key++ {
		mustInsert(t, tree, key)
	}

	var got []Key
	it := tree.Scan(60, 70)
	for it.Next() {
		got = append(got, it.Key())
	}
	require.NoError(t, it.Err())
	require.Len(t, got, 11)
	require.Equal(t, Key(60), got[0])
	require.Equal(t, Key(70), got[len(got)-1])
}

func TestScanEmptyTree(t *testing.T) {
	tree := newTestTree(t)
	it := tree.Scan(0, 100)
	require.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestDeleteFreesSlotForReuse(t *testing.T) {
	tree := newTestTree(t)
	for key := Key(1); key <= 10; key++ {
		mustInsert(t, tree, key)
	}

	deleted, err := tree.Delete(5)
	require.NoError(t, err)
	require.True(t, deleted)

	_, ok, err := tree.Lookup(5)
	require.NoError(t, err)
	require.False(t, ok)

	deleted, err = tree.Delete(5)
	require.NoError(t, err)
	require.False(t, deleted, "second delete must report an absent key")

	// The freed slot is the lowest free index and gets reused next.
	slot, ok := tree.root.takeFreeSlot()
	require.True(t, ok)
	require.Equal(t, uint8(4), slot)
	tree.root.occupied[slot] = false

	mustInsert(t, tree, 99)
	require.Equal(t, []Key{1, 2, 3, 4, 6, 7, 8, 9, 10, 99}, collectKeys(t, tree))
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.tbl")

	tree, err := Create(path, testSchema)
	require.NoError(t, err)
	for key := Key(1); key <= 100; key++ {
		require.NoError(t, tree.Insert(key, testRow(int64(key), fmt.Sprintf("row-%d", key))))
	}
	require.NoError(t, tree.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	require.Equal(t, testSchema, reopened.Schema())
	for key := Key(1); key <= 100; key++ {
		requireLookup(t, reopened, key)
	}
}

func TestInsertRejectsOversizedRow(t *testing.T) {
	tree := newTestTree(t)
	row := types.Row{
		types.NewInteger(1),
		types.NewText("far far far too long for a thirty-two byte leaf slot"),
	}
	require.ErrorIs(t, tree.Insert(1, row), ErrRowTooLarge)

	_, ok, err := tree.Lookup(1)
	require.NoError(t, err)
	require.False(t, ok, "rejected insert must not touch the tree")
}
