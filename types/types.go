package types

import "fmt"

// DBType identifies a column's value type.
type DBType int

const (
	Integer DBType = iota
	Text
)

func (t DBType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// DBValue is a single typed cell value. Exactly one field is meaningful,
// selected by Type.
type DBValue struct {
	Type DBType
	Int  int64
	Str  string
}

func NewInteger(v int64) DBValue {
	return DBValue{Type: Integer, Int: v}
}

func NewText(s string) DBValue {
	return DBValue{Type: Text, Str: s}
}

func (v DBValue) String() string {
	switch v.Type {
	case Integer:
		return fmt.Sprintf("%d", v.Int)
	case Text:
		return v.Str
	default:
		return "?"
	}
}

// Row is an ordered sequence of values, one per schema column.
type Row []DBValue

func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Equal reports whether two rows hold the same values in the same order.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}
