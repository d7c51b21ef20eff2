package pagination

import "slices"

// Boundary is the outcome of evaluating one fetched page.
type Boundary[T any, K Key] struct {
	Rows    []T
	Next    *Cursor[K]
	Prev    *Cursor[K]
	HasMore bool
}

// Evaluate trims the lookahead row and derives the neighbouring cursors.
//
// rows must be in the scan order of the Query built for original, holding
// at most one row beyond limit. For a Prev cursor they arrive nearest
// first and are returned ascending. The caller's slice is never reordered.
func Evaluate[T any, K Key](rows []T, limit int, original *Cursor[K], project func(T) K) Boundary[T, K] {
	backward := original != nil && original.Direction == Prev

	page := rows
	if backward {
		page = slices.Clone(rows)
		slices.Reverse(page)
	}

	hasMore := len(page) > limit
	if hasMore {
		if backward {
			// the lookahead row is the oldest one
			page = page[len(page)-limit:]
		} else {
			page = page[:limit]
		}
	}

	b := Boundary[T, K]{Rows: page, HasMore: hasMore}
	if len(page) == 0 {
		return b
	}

	var withNext, withPrev bool
	if original == nil {
		withNext = hasMore
	} else {
		switch original.Direction {
		case Next:
			withNext = hasMore
			withPrev = true
		case Prev:
			// the page the client came from lies ahead
			withNext = true
			withPrev = hasMore
		default:
			// BuildQuery rejects unknown directions; emit no links
			withNext, withPrev = false, false
		}
	}

	if withNext {
		b.Next = NewCursor(Next, project(page[len(page)-1]))
	}
	if withPrev {
		b.Prev = NewCursor(Prev, project(page[0]))
	}
	return b
}
