package pagination

// Key is the ordered tuple a cursor anchors on.
//
// Values returns the field values in the order declared by the key's
// KeySchema. The schema must match a real composite index on the backing
// collection, and the last field must be unique across the collection so
// that the ordering is total. Keys with duplicate values violate that
// precondition and page boundaries are undefined for them.
type Key interface {
	Values() []any
}

// Field is one column of a composite key.
type Field struct {
	// Name is the member name inside the encoded cursor payload
	Name string
	// Column is the datastore column; empty means Name
	Column string
}

func (f Field) column() string {
	if f.Column == "" {
		return f.Name
	}
	return f.Column
}

// KeySchema declares the field order of a key, ascending by convention.
type KeySchema []Field

// NewKeySchema builds a schema whose payload names equal the column names.
func NewKeySchema(columns ...string) KeySchema {
	s := make(KeySchema, 0, len(columns))
	for _, c := range columns {
		s = append(s, Field{Name: c})
	}
	return s
}

// Columns returns the datastore columns in key order.
func (s KeySchema) Columns() []string {
	cols := make([]string, len(s))
	for i, f := range s {
		cols[i] = f.column()
	}
	return cols
}
