package pagination

import (
	"bytes"
	"cmp"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Op int

const (
	Eq Op = iota
	Gt
	Lt
)

func (o Op) String() string {
	switch o {
	case Eq:
		return "="
	case Gt:
		return ">"
	case Lt:
		return "<"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Row exposes column values of a stored record to Predicate.Match.
type Row map[string]any

// Predicate is a datastore-agnostic filter. The set of implementations is
// closed: True, Compare, And and Or. Adapters translate it with a type
// switch over those four.
type Predicate interface {
	Match(row Row) bool
	predicate()
}

// True matches every row.
type True struct{}

// Compare is a single column comparison against a literal.
type Compare struct {
	Column string
	Op     Op
	Value  any
}

// And matches when every element matches; empty And matches everything.
type And []Predicate

// Or matches when any element matches; empty Or matches nothing.
type Or []Predicate

func (True) predicate()    {}
func (Compare) predicate() {}
func (And) predicate()     {}
func (Or) predicate()      {}

func (True) Match(Row) bool { return true }

func (c Compare) Match(row Row) bool {
	v, ok := row[c.Column]
	if !ok {
		return false
	}
	r := CompareValues(v, c.Value)
	switch c.Op {
	case Eq:
		return r == 0
	case Gt:
		return r > 0
	case Lt:
		return r < 0
	default:
		return false
	}
}

func (a And) Match(row Row) bool {
	for _, p := range a {
		if !p.Match(row) {
			return false
		}
	}
	return true
}

func (o Or) Match(row Row) bool {
	for _, p := range o {
		if p.Match(row) {
			return true
		}
	}
	return false
}

// KeysetPredicate expands the tuple comparison (c1, c2, ...) op (v1, v2, ...)
// into the OR chain of AND groups understood by ordinary query builders:
//
//	c1 op v1 OR (c1 = v1 AND c2 op v2) OR (c1 = v1 AND c2 = v2 AND c3 op v3) ...
func KeysetPredicate(columns []string, values []any, op Op) Predicate {
	groups := make(Or, 0, len(columns))
	for i := range columns {
		group := make(And, 0, i+1)
		for j := 0; j < i; j++ {
			group = append(group, Compare{Column: columns[j], Op: Eq, Value: values[j]})
		}
		group = append(group, Compare{Column: columns[i], Op: op, Value: values[i]})
		if len(group) == 1 {
			groups = append(groups, group[0])
			continue
		}
		groups = append(groups, group)
	}
	if len(groups) == 1 {
		return groups[0]
	}
	return groups
}

// CompareValues orders two key values of the same type and returns -1, 0
// or +1. UUIDs compare bytewise, matching Postgres and the canonical
// string form. Values of unrelated types fall back to their fmt form so a
// tampered cursor can shift a page but never panic.
func CompareValues(a, b any) int {
	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case uuid.UUID:
		if y, ok := b.(uuid.UUID); ok {
			return bytes.Compare(x[:], y[:])
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case []byte:
		if y, ok := b.([]byte); ok {
			return bytes.Compare(x, y)
		}
	case float32, float64:
		if y, ok := toFloat(b); ok {
			xf, _ := toFloat(x)
			return cmp.Compare(xf, y)
		}
	case int, int8, int16, int32, int64:
		if y, ok := toInt(b); ok {
			xi, _ := toInt(x)
			return cmp.Compare(xi, y)
		}
		if y, ok := toFloat(b); ok {
			xi, _ := toInt(x)
			return cmp.Compare(float64(xi), y)
		}
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		if i, ok := toInt(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}
