// Package sqlq renders pagination queries as SQL for the relational stores.
package sqlq

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
)

// Dialect captures what differs between SQL backends.
type Dialect struct {
	Name string
	// Placeholder renders the n-th (1-based) bind variable
	Placeholder func(n int) string
	// Value converts a key value to its stored representation; nil keeps it
	Value func(v any) any
}

var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type builder struct {
	d    Dialect
	sb   strings.Builder
	args []any
}

// Select appends the WHERE, ORDER BY and LIMIT clauses of q to base, which
// must be a SELECT ... FROM statement without those clauses. Bind variables
// are numbered after the len(args) already used by base.
func Select(d Dialect, base string, q pagination.Query, args ...any) (string, []any, error) {
	b := &builder{d: d, args: append([]any(nil), args...)}
	b.sb.WriteString(base)

	if _, all := q.Where.(pagination.True); !all && q.Where != nil {
		b.sb.WriteString(" WHERE ")
		if err := b.predicate(q.Where); err != nil {
			return "", nil, err
		}
	}

	if len(q.Order.Columns) > 0 {
		dir := "ASC"
		if q.Order.Descending {
			dir = "DESC"
		}
		b.sb.WriteString(" ORDER BY ")
		for i, c := range q.Order.Columns {
			if !identifier.MatchString(c) {
				return "", nil, fmt.Errorf("invalid column name: %q", c)
			}
			if i > 0 {
				b.sb.WriteString(", ")
			}
			b.sb.WriteString(c)
			b.sb.WriteString(" ")
			b.sb.WriteString(dir)
		}
	}

	if q.Limit > 0 {
		b.sb.WriteString(" LIMIT ")
		b.sb.WriteString(b.bind(q.Limit))
	}

	return b.sb.String(), b.args, nil
}

func (b *builder) bind(v any) string {
	b.args = append(b.args, v)
	return b.d.Placeholder(len(b.args))
}

func (b *builder) predicate(p pagination.Predicate) error {
	switch p := p.(type) {
	case pagination.True:
		b.sb.WriteString("1 = 1")
	case pagination.Compare:
		if !identifier.MatchString(p.Column) {
			return fmt.Errorf("invalid column name: %q", p.Column)
		}
		v := p.Value
		if b.d.Value != nil {
			v = b.d.Value(v)
		}
		b.sb.WriteString(p.Column)
		b.sb.WriteString(" ")
		b.sb.WriteString(p.Op.String())
		b.sb.WriteString(" ")
		b.sb.WriteString(b.bind(v))
	case pagination.And:
		return b.group(" AND ", "1 = 1", p)
	case pagination.Or:
		return b.group(" OR ", "1 = 0", p)
	default:
		return fmt.Errorf("unsupported predicate %T", p)
	}
	return nil
}

func (b *builder) group(sep, empty string, ps []pagination.Predicate) error {
	if len(ps) == 0 {
		b.sb.WriteString(empty)
		return nil
	}
	b.sb.WriteString("(")
	for i, p := range ps {
		if i > 0 {
			b.sb.WriteString(sep)
		}
		if err := b.predicate(p); err != nil {
			return err
		}
	}
	b.sb.WriteString(")")
	return nil
}
