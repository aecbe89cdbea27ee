package storage

import (
	"math"

	"github.com/pkg/errors"

	"juicydb/btree"
	"juicydb/query_parser/parser"
	"juicydb/types"
)

// Result is what a statement produces: rows with their column names for
// SELECT, a row count for the mutating statements.
type Result struct {
	Columns      []string
	Rows         []types.Row
	RowsAffected int
}

// Execute runs one parsed statement against the managed tables.
func (m *Manager) Execute(stmt parser.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStmt:
		schema := make(types.Schema, 0, len(s.Columns))
		for _, col := range s.Columns {
			schema = append(schema, types.Column{Name: col.Name, Type: col.Type})
		}
		if err := m.CreateTable(s.Table, schema); err != nil {
			return nil, err
		}
		return &Result{}, nil

	case *parser.InsertStmt:
		if err := m.InsertInto(s.Table, types.Row(s.Values)); err != nil {
			return nil, err
		}
		return &Result{RowsAffected: 1}, nil

	case *parser.SelectStmt:
		return m.executeSelect(s)

	case *parser.DeleteStmt:
		tree, err := m.table(s.Table)
		if err != nil {
			return nil, err
		}
		if s.Where.Column != tree.Schema()[0].Name {
			return nil, errors.Wrapf(ErrBadPredicate, "column %s", s.Where.Column)
		}
		deleted, err := m.DeleteFrom(s.Table, s.Where.Lo)
		if err != nil {
			return nil, err
		}
		res := &Result{}
		if deleted {
			res.RowsAffected = 1
		}
		return res, nil

	default:
		return nil, errors.Errorf("unsupported statement %T", stmt)
	}
}

func (m *Manager) executeSelect(s *parser.SelectStmt) (*Result, error) {
	tree, err := m.table(s.Table)
	if err != nil {
		return nil, err
	}
	schema := tree.Schema()

	// Resolve the projection against the schema.
	var indices []int
	res := &Result{}
	if s.Star {
		for i, col := range schema {
			indices = append(indices, i)
			res.Columns = append(res.Columns, col.Name)
		}
	} else {
		var ok bool
		indices, ok = schema.ColumnIndices(s.Columns)
		if !ok {
			return nil, errors.Wrapf(ErrColumnNotFound, "table %s: %v", s.Table, s.Columns)
		}
		res.Columns = append(res.Columns, s.Columns...)
	}

	// The only indexed predicate is the key column.
	if s.Where != nil && s.Where.Column != schema[0].Name {
		return nil, errors.Wrapf(ErrBadPredicate, "column %s", s.Where.Column)
	}

	project := func(row types.Row) {
		out := make(types.Row, 0, len(indices))
		for _, i := range indices {
			out = append(out, row[i])
		}
		res.Rows = append(res.Rows, out)
	}

	// Point lookup for an equality predicate.
	if s.Where != nil && !s.Where.IsRange {
		key, err := toKey(s.Where.Lo)
		if err != nil {
			return res, nil // out-of-range key matches nothing
		}
		row, found, err := tree.Lookup(key)
		if err != nil {
			return nil, err
		}
		if found {
			project(row)
		}
		return res, nil
	}

	// Range or full scan, clamped to the key domain.
	lo, hi := int64(0), int64(math.MaxUint32)
	if s.Where != nil {
		lo, hi = s.Where.Lo, s.Where.Hi
		if hi < 0 || lo > math.MaxUint32 || lo > hi {
			return res, nil
		}
		if lo < 0 {
			lo = 0
		}
		if hi > math.MaxUint32 {
			hi = math.MaxUint32
		}
	}

	it := tree.Scan(btree.Key(lo), btree.Key(hi))
	for it.Next() {
		project(it.Row())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
