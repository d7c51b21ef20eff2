package storage

import (
	"context"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
)

// Reader lists articles for one keyset page.
//
// ListArticles must honour q.Where, return rows in q.Order over the
// (created_at, id) key and stop after q.Limit rows. Errors are returned as
// is; retries belong to the caller's driver configuration.
type Reader interface {
	ListArticles(ctx context.Context, q pagination.Query) ([]domain.Article, error)
}

// Store is a complete article backend.
type Store interface {
	Reader
	Storer
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Fetcher adapts a Reader to the paginator.
func Fetcher(r Reader) pagination.Fetcher[domain.Article] {
	return pagination.FetcherFunc[domain.Article](r.ListArticles)
}
