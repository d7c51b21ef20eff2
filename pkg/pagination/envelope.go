package pagination

// Paginated is the response envelope of a keyset page.
// It never carries a total count.
type Paginated[T any] struct {
	Data  []T   `json:"data"`
	Limit int   `json:"limit"`
	Links Links `json:"links"`
}

// NewPaginated wraps page rows; a nil slice becomes an empty JSON array.
func NewPaginated[T any](rows []T, limit int, links Links) *Paginated[T] {
	if rows == nil {
		rows = make([]T, 0)
	}
	return &Paginated[T]{
		Data:  rows,
		Limit: limit,
		Links: links,
	}
}
