// Package storage routes statements to single-file B-tree tables. Each
// table is one .tbl file inside the manager's directory; the row's first
// column is an INTEGER and doubles as the tree key.
package storage

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"juicydb/btree"
)

const tableFileExt = ".tbl"

type Manager struct {
	dir    string
	tables map[string]*btree.BTree
	log    *zap.Logger
}

// NewManager opens every table file found in dir, creating the directory
// when it does not exist yet.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data directory %s", dir)
	}

	m := &Manager{
		dir:    dir,
		tables: make(map[string]*btree.BTree),
		log:    zap.NewNop(),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read data directory %s", dir)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), tableFileExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), tableFileExt)
		tree, err := btree.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			m.Close()
			return nil, errors.Wrapf(err, "open table %s", name)
		}
		m.tables[name] = tree
	}
	return m, nil
}

// SetLogger replaces the manager's logger and propagates it to every open
// table.
func (m *Manager) SetLogger(log *zap.Logger) {
	if log == nil {
		return
	}
	m.log = log
	for _, tree := range m.tables {
		tree.SetLogger(log)
	}
}

// Tables returns the open table names in sorted order.
func (m *Manager) Tables() []string {
	names := make([]string, 0, len(m.tables))
	for name := range m.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every table. The first error wins but all tables are
// attempted.
func (m *Manager) Close() error {
	var firstErr error
	for name, tree := range m.tables {
		if err := tree.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "close table %s", name)
		}
		delete(m.tables, name)
	}
	return firstErr
}

func (m *Manager) table(name string) (*btree.BTree, error) {
	tree, ok := m.tables[name]
	if !ok {
		return nil, errors.Wrapf(ErrTableNotFound, "table %s", name)
	}
	return tree, nil
}

func (m *Manager) tablePath(name string) string {
	return filepath.Join(m.dir, name+tableFileExt)
}
