package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/internal/storage"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

// ListArticles serves the page with search_after. Sorting on the key
// columns and seeking past q.Seek selects exactly the rows q.Where would,
// in both directions, so the predicate itself is not rendered.
func (e *Store) ListArticles(ctx context.Context, q pagination.Query) ([]domain.Article, error) {
	req, err := searchRequest(q)
	if err != nil {
		return nil, err
	}

	slog.Debug("Executing es article page query",
		"has_cursor", q.Seek != nil,
		"descending", q.Order.Descending,
		"limit", q.Limit)

	res, err := e.client.Search().Index(e.indexName).Request(req).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	articles := make([]domain.Article, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc Document
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		a, err := doc.article()
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func searchRequest(q pagination.Query) (*search.Request, error) {
	order := sortorder.Asc
	if q.Order.Descending {
		order = sortorder.Desc
	}

	req := &search.Request{
		Query: &types.Query{MatchAll: types.NewMatchAllQuery()},
	}
	if q.Limit > 0 {
		size := q.Limit
		req.Size = &size
	}
	for _, c := range q.Order.Columns {
		req.Sort = append(req.Sort, &types.SortOptions{
			SortOptions: map[string]types.FieldSort{c: {Order: &order}},
		})
	}

	if q.Seek != nil {
		if len(q.Seek) != len(q.Order.Columns) {
			return nil, fmt.Errorf("seek has %d values for %d sort columns", len(q.Seek), len(q.Order.Columns))
		}
		for _, v := range q.Seek {
			fv, err := sortValue(v)
			if err != nil {
				return nil, err
			}
			req.SearchAfter = append(req.SearchAfter, fv)
		}
	}
	return req, nil
}

// sortValue converts a key value to the form Elasticsearch reports in hit
// sort values: nanoseconds for date_nanos fields, strings for keywords.
func sortValue(v any) (types.FieldValue, error) {
	switch v := v.(type) {
	case time.Time:
		return types.FieldValue(v.UnixNano()), nil
	case uuid.UUID:
		return types.FieldValue(v.String()), nil
	case string, int, int64, float64:
		return types.FieldValue(v), nil
	default:
		return nil, fmt.Errorf("unsupported seek value %T", v)
	}
}

var _ storage.Store = (*Store)(nil)
