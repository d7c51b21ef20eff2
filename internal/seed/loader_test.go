package seed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/apperr"
	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/keypage/internal/storage/storagetest"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
articles:
  - id: 0195a1b2-0000-7000-8000-000000000001
    title: Markets open higher
    author: Desk
    url: https://news.example/markets
    created_at: 2025-02-01T08:00:00Z
    source_name: wire
    category: business
  - title: Storm warning issued
    created_at: 2025-02-01T09:30:00Z
`

func TestYAMLLoader_Load(t *testing.T) {
	articles, err := NewYAMLLoader(strings.NewReader(fixture)).Load()
	require.NoError(t, err)
	require.Len(t, articles, 2)

	first := articles[0]
	assert.Equal(t, uuid.MustParse("0195a1b2-0000-7000-8000-000000000001"), first.ID)
	assert.Equal(t, "Markets open higher", first.Title)
	assert.Equal(t, domain.ArticleMetadata{SourceName: "wire", Category: "business"}, first.Metadata)
	assert.True(t, time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC).Equal(first.CreatedAt))

	assert.Equal(t, uuid.Nil, articles[1].ID)
}

func TestYAMLLoader_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
		msg   string
	}{
		{name: "empty", in: "", msg: "fixture file is empty"},
		{name: "not yaml", in: "articles: [ {", msg: "failed to decode fixture file"},
		{name: "unknown field", in: "articles:\n  - title: x\n    headline: y\n", msg: "failed to decode fixture file"},
		{name: "missing title", in: "articles:\n  - author: x\n", field: "articles[0].title", msg: "is required"},
		{name: "bad url", in: "articles:\n  - title: x\n  - title: y\n    url: not a url\n", field: "articles[1].url", msg: "must be a valid URL"},
		{name: "bad id", in: "articles:\n  - title: x\n    id: 42\n", msg: "failed to decode fixture file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLLoader(strings.NewReader(tt.in)).Load()
			require.Error(t, err)

			var ve *apperr.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.msg, ve.Message)
		})
	}
}

type countingStorer struct {
	*in_mem.InMemStore
	batches []int
}

func (s *countingStorer) SaveBulk(ctx context.Context, articles []domain.Article) error {
	s.batches = append(s.batches, len(articles))
	return s.InMemStore.SaveBulk(ctx, articles)
}

func TestSeed(t *testing.T) {
	store := &countingStorer{InMemStore: in_mem.NewInMemStore()}
	articles := storagetest.Articles(7)

	require.NoError(t, Seed(context.Background(), store, articles, 3))
	assert.Equal(t, []int{3, 3, 1}, store.batches)

	got, err := store.ListArticles(context.Background(), pagination.Query{})
	require.NoError(t, err)
	assert.Equal(t, storagetest.Sorted(articles), storagetest.IDs(got))
}

func TestSeed_StopsOnError(t *testing.T) {
	err := Seed(context.Background(), failingStorer{}, storagetest.Articles(2), 0)
	assert.ErrorContains(t, err, "failed to save articles 0-2")
}

type failingStorer struct{}

func (failingStorer) Save(context.Context, domain.Article) (uuid.UUID, error) {
	return uuid.Nil, errors.New("read only")
}

func (failingStorer) SaveBulk(context.Context, []domain.Article) error {
	return errors.New("read only")
}
