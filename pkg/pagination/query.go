package pagination

import "fmt"

// Order is the scan order a datastore must apply for one fetch.
// Columns are the key columns in declared order; Descending flips all of
// them at once.
type Order struct {
	Columns    []string
	Descending bool
}

// Query is what a Fetcher receives: filter, scan order and row limit.
// Limit already includes the lookahead row.
type Query struct {
	Where Predicate
	Order Order
	Limit int
	// Seek holds the cursor key values in column order, nil on the first
	// page. Stores with a native seek primitive can use it instead of Where.
	Seek []any
}

// BuildQuery derives the fetch for one page.
//
// Without a cursor the first limit+1 rows in ascending key order are
// requested. A Next cursor selects rows strictly after the key, ascending.
// A Prev cursor selects rows strictly before the key, scanned descending
// so the store returns the rows nearest the cursor; Evaluate restores
// ascending order.
func BuildQuery[K Key](schema KeySchema, cursor *Cursor[K], limit int) (Query, error) {
	columns := schema.Columns()
	q := Query{
		Where: True{},
		Order: Order{Columns: columns},
		Limit: limit + 1,
	}
	if cursor == nil {
		return q, nil
	}

	values := cursor.Key.Values()
	if len(values) != len(columns) {
		return Query{}, fmt.Errorf("key has %d values, schema declares %d fields", len(values), len(columns))
	}

	var op Op
	switch cursor.Direction {
	case Next:
		op = Gt
	case Prev:
		op = Lt
		q.Order.Descending = true
	default:
		return Query{}, fmt.Errorf("unsupported direction: %v", cursor.Direction)
	}

	q.Where = KeysetPredicate(columns, values, op)
	q.Seek = values
	return q, nil
}
