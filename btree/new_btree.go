package btree

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"juicydb/types"
)

// Create makes a new table file at path with the given schema: a header
// page and an empty leaf root at page 1.
func Create(path string, schema types.Schema) (*BTree, error) {
	if len(schema) == 0 {
		return nil, errors.New("schema must have at least one column")
	}

	disk, err := NewOnDiskPager(path)
	if err != nil {
		return nil, err
	}
	pager, err := NewCachedPager(disk)
	if err != nil {
		disk.Close()
		return nil, err
	}

	t := &BTree{
		pager:  pager,
		schema: schema,
		log:    zap.NewNop(),
	}

	if err := t.saveHeader(); err != nil {
		pager.Close()
		return nil, err
	}

	rootID, err := pager.AllocatePage()
	if err != nil {
		pager.Close()
		return nil, err
	}
	t.rootID = rootID
	t.root = NewNode(NodeLeaf)

	if err := t.writeNode(rootID, t.root); err != nil {
		pager.Close()
		return nil, err
	}
	if err := t.saveHeader(); err != nil {
		pager.Close()
		return nil, err
	}

	t.log.Debug("table created", zap.String("path", path), zap.Int("columns", len(schema)))
	return t, nil
}

// Open loads an existing table file, recovering the schema and root from
// the header page.
func Open(path string) (*BTree, error) {
	disk, err := NewOnDiskPager(path)
	if err != nil {
		return nil, err
	}
	pager, err := NewCachedPager(disk)
	if err != nil {
		disk.Close()
		return nil, err
	}

	headerPage, err := pager.ReadPage(0)
	if err != nil {
		pager.Close()
		return nil, errors.Wrap(err, "read header page")
	}
	rootID, schema, err := decodeHeader(headerPage)
	if err != nil {
		pager.Close()
		return nil, err
	}

	t := &BTree{
		pager:  pager,
		schema: schema,
		rootID: rootID,
		log:    zap.NewNop(),
	}

	root, err := t.readNode(rootID)
	if err != nil {
		pager.Close()
		return nil, errors.Wrapf(err, "load root page %d", rootID)
	}
	t.root = root

	return t, nil
}

// Close syncs and releases the table file.
func (t *BTree) Close() error {
	return t.pager.Close()
}

// readNode decodes the node stored at the given page.
func (t *BTree) readNode(id PageID) (*Node, error) {
	page, err := t.pager.ReadPage(id)
	if err != nil {
		return nil, err
	}
	return decodeNode(page, t.schema)
}

// writeNode encodes the node and writes it back to its page.
func (t *BTree) writeNode(id PageID, n *Node) error {
	page, err := encodeNode(n, t.schema)
	if err != nil {
		return err
	}
	return t.pager.WritePage(id, page)
}
