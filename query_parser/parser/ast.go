package parser

import (
	"juicydb/types"
)

// Statement is the interface all parsed statements satisfy.
type Statement interface {
	stmt()
}

// CREATE TABLE statement
type CreateTableStmt struct {
	Table   string
	Columns []ColumnDef
}

type ColumnDef struct {
	Name string
	Type types.DBType
}

// INSERT statement
type InsertStmt struct {
	Table  string
	Values []types.DBValue
}

// SELECT statement. Star means "all columns"; otherwise Columns lists the
// projection. Where is nil for a full-table scan.
type SelectStmt struct {
	Table   string
	Columns []string
	Star    bool
	Where   *WhereClause
}

// DELETE statement
type DeleteStmt struct {
	Table string
	Where *WhereClause
}

// WhereClause is a key predicate: equality (Lo == Hi) or an inclusive
// BETWEEN range.
type WhereClause struct {
	Column  string
	Lo, Hi  int64
	IsRange bool
}

func (*CreateTableStmt) stmt() {}
func (*InsertStmt) stmt()      {}
func (*SelectStmt) stmt()      {}
func (*DeleteStmt) stmt()      {}
