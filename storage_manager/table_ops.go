package storage

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"juicydb/btree"
	"juicydb/types"
)

// CreateTable creates a new table file for the given schema. The first
// column must be an INTEGER; it serves as the tree key.
func (m *Manager) CreateTable(name string, schema types.Schema) error {
	if _, ok := m.tables[name]; ok {
		return errors.Wrapf(ErrTableExists, "table %s", name)
	}
	if len(schema) == 0 || schema[0].Type != types.Integer {
		return errors.Wrapf(ErrBadSchema, "table %s", name)
	}

	tree, err := btree.Create(m.tablePath(name), schema)
	if err != nil {
		return errors.Wrapf(err, "create table %s", name)
	}
	tree.SetLogger(m.log)
	m.tables[name] = tree

	m.log.Info("table created",
		zap.String("table", name),
		zap.Int("columns", len(schema)))
	return nil
}

// InsertInto type-checks the row against the table schema and stores it
// under its first-column key. Inserting an existing key overwrites the row.
func (m *Manager) InsertInto(name string, row types.Row) error {
	tree, err := m.table(name)
	if err != nil {
		return err
	}

	schema := tree.Schema()
	if len(row) != len(schema) {
		return errors.Wrapf(ErrSchemaMismatch, "table %s: got %d values, want %d",
			name, len(row), len(schema))
	}
	if !schema.TypeCheck(row) {
		return errors.Wrapf(ErrSchemaMismatch, "table %s", name)
	}

	key, err := rowKey(row)
	if err != nil {
		return errors.WithMessagef(err, "table %s", name)
	}
	return tree.Insert(key, row)
}

// DeleteFrom removes the row with the given key. Returns false when the
// key is absent or outside the key domain.
func (m *Manager) DeleteFrom(name string, key int64) (bool, error) {
	tree, err := m.table(name)
	if err != nil {
		return false, err
	}
	k, err := toKey(key)
	if err != nil {
		return false, nil // out-of-range key matches nothing
	}
	return tree.Delete(k)
}

// rowKey extracts the tree key from the row's first column.
func rowKey(row types.Row) (btree.Key, error) {
	return toKey(row[0].Int)
}

func toKey(v int64) (btree.Key, error) {
	if v < 0 || v > math.MaxUint32 {
		return 0, errors.Wrapf(ErrKeyOutOfRange, "key %d", v)
	}
	return btree.Key(v), nil
}
