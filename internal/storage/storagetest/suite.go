// Package storagetest holds the conformance checks every article store
// must pass to serve keyset pages.
package storagetest

import (
	"context"
	"net/url"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/internal/storage"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

// Articles builds n articles where every three consecutive ones share a
// creation time, so the id tie-breaker decides their order.
func Articles(n int) []domain.Article {
	articles := make([]domain.Article, 0, n)
	for i := 0; i < n; i++ {
		articles = append(articles, domain.Article{
			ID:        uuid.New(),
			Title:     "article " + strconv.Itoa(i),
			Author:    "desk",
			URL:       "https://news.example/" + strconv.Itoa(i),
			Language:  domain.ArticleDefaultLanguage,
			CreatedAt: baseTime.Add(time.Duration(i/3) * time.Second),
			Metadata:  domain.ArticleMetadata{SourceName: "wire", Category: "world"},
		})
	}
	return articles
}

// Sorted returns the ids of articles in key order.
func Sorted(articles []domain.Article) []uuid.UUID {
	sorted := slices.Clone(articles)
	slices.SortFunc(sorted, domain.CompareArticles)
	return IDs(sorted)
}

func IDs(articles []domain.Article) []uuid.UUID {
	ids := make([]uuid.UUID, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	return ids
}

// Factory returns an empty store; it is called once per subtest.
type Factory func(t *testing.T) storage.Store

// Run checks forward and backward traversal plus the page boundary cases
// against the store.
func Run(t *testing.T, newStore Factory) {
	t.Run("empty store", func(t *testing.T) {
		s := newStore(t)

		res := page(t, s, pagination.Params{})
		assert.Empty(t, res.Data)
		assert.Empty(t, res.Links.Next)
		assert.Empty(t, res.Links.Prev)
	})

	t.Run("exactly limit rows", func(t *testing.T) {
		s := newStore(t)
		articles := Articles(10)
		require.NoError(t, s.SaveBulk(context.Background(), articles))

		res := page(t, s, pagination.Params{Limit: ptr("10")})
		assert.Equal(t, Sorted(articles), IDs(res.Data))
		assert.Empty(t, res.Links.Next)
		assert.Empty(t, res.Links.Prev)
	})

	t.Run("traversal", func(t *testing.T) {
		s := newStore(t)
		articles := Articles(25)
		require.NoError(t, s.SaveBulk(context.Background(), articles))
		want := Sorted(articles)

		var pages []*pagination.Paginated[domain.Article]
		params := pagination.Params{Limit: ptr("10")}
		for {
			res := page(t, s, params)
			pages = append(pages, res)
			if res.Links.Next == "" {
				break
			}
			require.Less(t, len(pages), 10, "forward traversal does not terminate")
			params = follow(t, res.Links.Next)
		}

		require.Len(t, pages, 3)
		var seen []uuid.UUID
		for _, p := range pages {
			seen = append(seen, IDs(p.Data)...)
		}
		assert.Equal(t, want, seen)
		assert.Empty(t, pages[0].Links.Prev)
		assert.NotEmpty(t, pages[1].Links.Prev)
		assert.NotEmpty(t, pages[1].Links.Next)

		back := page(t, s, follow(t, pages[2].Links.Prev))
		assert.Equal(t, IDs(pages[1].Data), IDs(back.Data))
		assert.NotEmpty(t, back.Links.Prev)

		back = page(t, s, follow(t, back.Links.Prev))
		assert.Equal(t, IDs(pages[0].Data), IDs(back.Data))
		assert.Empty(t, back.Links.Prev)
		assert.Equal(t, pages[0].Links.Next, back.Links.Next)
	})

	t.Run("save assigns defaults", func(t *testing.T) {
		s := newStore(t)

		id, err := s.Save(context.Background(), domain.Article{Title: "untitled wire", CreatedAt: baseTime})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		res := page(t, s, pagination.Params{})
		require.Len(t, res.Data, 1)
		assert.Equal(t, id, res.Data[0].ID)
		assert.Equal(t, domain.ArticleDefaultLanguage, res.Data[0].Language)
		assert.True(t, baseTime.Equal(res.Data[0].CreatedAt))
	})
}

var route = pagination.LinkBuilder{BasePath: "/articles"}

func page(t *testing.T, s storage.Store, params pagination.Params) *pagination.Paginated[domain.Article] {
	t.Helper()
	res, err := domain.NewArticlePaginator().Paginate(context.Background(), params, route, storage.Fetcher(s))
	require.NoError(t, err)
	return res
}

func follow(t *testing.T, link string) pagination.Params {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return pagination.ParamsFromQuery(u.Query())
}

func ptr(s string) *string {
	return &s
}
