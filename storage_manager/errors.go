package storage

import "github.com/pkg/errors"

var (
	ErrTableNotFound  = errors.New("table not found")
	ErrTableExists    = errors.New("table already exists")
	ErrSchemaMismatch = errors.New("row does not match the table schema")
	ErrBadSchema      = errors.New("first column must be an INTEGER key")
	ErrKeyOutOfRange  = errors.New("key must fit in an unsigned 32-bit integer")
	ErrBadPredicate   = errors.New("WHERE supports only the key column")
	ErrColumnNotFound = errors.New("column not found")
)
