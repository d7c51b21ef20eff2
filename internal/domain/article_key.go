package domain

import (
	"time"

	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/google/uuid"
)

// ArticleKey orders articles by creation time, ties broken by the unique
// article id. It follows the articles_created_at_id_idx index.
type ArticleKey struct {
	CreatedAt time.Time `json:"created_at"`
	ID        uuid.UUID `json:"id"`
}

func (k ArticleKey) Values() []any {
	return []any{k.CreatedAt, k.ID}
}

const (
	ColumnCreatedAt = "created_at"
	ColumnID        = "id"
)

var ArticleKeySchema = pagination.NewKeySchema(ColumnCreatedAt, ColumnID)

func ArticleKeyOf(a Article) ArticleKey {
	return ArticleKey{CreatedAt: a.CreatedAt, ID: a.ID}
}

// ArticleRow exposes the key columns of an article to in-memory predicate
// evaluation.
func ArticleRow(a Article) pagination.Row {
	return pagination.Row{
		ColumnCreatedAt: a.CreatedAt,
		ColumnID:        a.ID,
	}
}

// CompareArticles orders articles by ArticleKey.
func CompareArticles(a, b Article) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return pagination.CompareValues(a.ID, b.ID)
}

func NewArticlePaginator() *pagination.Paginator[Article, ArticleKey] {
	return pagination.New(pagination.NewCodec[ArticleKey](ArticleKeySchema), ArticleKeyOf)
}
