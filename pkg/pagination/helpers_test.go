package pagination

import (
	"context"
	"net/url"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type eventKey struct {
	CreatedAt time.Time `json:"created_at"`
	ID        int64     `json:"id"`
}

func (k eventKey) Values() []any {
	return []any{k.CreatedAt, k.ID}
}

var eventSchema = NewKeySchema("created_at", "id")

type event struct {
	ID        int64
	CreatedAt time.Time
}

func eventKeyOf(e event) eventKey {
	return eventKey{CreatedAt: e.CreatedAt, ID: e.ID}
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// makeEvents returns n events with ids 1..n; every third pair shares a
// timestamp so the id tie-breaker is exercised.
func makeEvents(n int) []event {
	events := make([]event, 0, n)
	for i := 1; i <= n; i++ {
		events = append(events, event{
			ID:        int64(i),
			CreatedAt: baseTime.Add(time.Duration(i/3) * time.Minute),
		})
	}
	return events
}

func compareEvents(a, b event) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return CompareValues(a.ID, b.ID)
}

type memStore struct {
	events []event
	calls  int
	last   Query
}

func (s *memStore) Fetch(_ context.Context, q Query) ([]event, error) {
	s.calls++
	s.last = q

	var out []event
	for _, e := range s.events {
		if q.Where.Match(Row{"created_at": e.CreatedAt, "id": e.ID}) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, compareEvents)
	if q.Order.Descending {
		slices.Reverse(out)
	}
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func newEventPaginator() *Paginator[event, eventKey] {
	return New[event, eventKey](NewCodec[eventKey](eventSchema), eventKeyOf)
}

func ids(events []event) []int64 {
	out := make([]int64, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

func idRange(from, to int64) []int64 {
	var out []int64
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// follow turns a page link back into request params.
func follow(t *testing.T, link string) Params {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return ParamsFromQuery(u.Query())
}

func strPtr(s string) *string {
	return &s
}
