package pagination

import (
	"context"
	"fmt"
)

// Fetcher runs a Query against a datastore and returns at most q.Limit
// rows in the order q.Order describes.
type Fetcher[T any] interface {
	Fetch(ctx context.Context, q Query) ([]T, error)
}

type FetcherFunc[T any] func(ctx context.Context, q Query) ([]T, error)

func (f FetcherFunc[T]) Fetch(ctx context.Context, q Query) ([]T, error) {
	return f(ctx, q)
}

// Paginator wires the codec, query builder, boundary evaluator and link
// builder for one endpoint. It holds no per-request state and is safe for
// concurrent use.
type Paginator[T any, K Key] struct {
	codec   *Codec[K]
	project func(T) K
}

// New creates a paginator; project extracts the key of a row.
func New[T any, K Key](codec *Codec[K], project func(T) K) *Paginator[T, K] {
	return &Paginator[T, K]{codec: codec, project: project}
}

func (p *Paginator[T, K]) Codec() *Codec[K] {
	return p.codec
}

func (p *Paginator[T, K]) Validate(params Params) (Page[K], error) {
	return Validate(params, p.codec)
}

// Paginate validates params and serves the page. Validation errors are
// returned before the fetcher is called; fetch errors are wrapped and
// otherwise passed through untouched.
func (p *Paginator[T, K]) Paginate(ctx context.Context, params Params, route LinkBuilder, fetcher Fetcher[T]) (*Paginated[T], error) {
	page, err := p.Validate(params)
	if err != nil {
		return nil, err
	}
	return p.Serve(ctx, page, route, fetcher)
}

// Serve fetches and assembles an already validated page.
func (p *Paginator[T, K]) Serve(ctx context.Context, page Page[K], route LinkBuilder, fetcher Fetcher[T]) (*Paginated[T], error) {
	q, err := BuildQuery(p.codec.Schema(), page.Cursor, page.Limit)
	if err != nil {
		return nil, err
	}

	rows, err := fetcher.Fetch(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	b := Evaluate(rows, page.Limit, page.Cursor, p.project)

	links, err := BuildLinks(p.codec, route, page, b.Next, b.Prev)
	if err != nil {
		return nil, fmt.Errorf("failed to build links: %w", err)
	}

	return NewPaginated(b.Rows, page.Limit, links), nil
}
