package types

// Column is a single (name, type) pair in a table schema.
type Column struct {
	Name string
	Type DBType
}

// Schema is the ordered column list of a table. It is loaded once from the
// header page and never changes for the table's lifetime.
type Schema []Column

// FieldType returns the type of the named column.
func (s Schema) FieldType(name string) (DBType, bool) {
	for _, col := range s {
		if col.Name == name {
			return col.Type, true
		}
	}
	return 0, false
}

// ColumnIndices maps column names to their positions in the schema.
// Returns false if any name is unknown.
func (s Schema) ColumnIndices(names []string) ([]int, bool) {
	indices := make([]int, 0, len(names))
	for _, name := range names {
		found := -1
		for i, col := range s {
			if col.Name == name {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		indices = append(indices, found)
	}
	return indices, true
}

// TypeCheck reports whether the row's value types match the schema,
// column by column.
func (s Schema) TypeCheck(row Row) bool {
	if len(row) != len(s) {
		return false
	}
	for i, col := range s {
		if row[i].Type != col.Type {
			return false
		}
	}
	return true
}
