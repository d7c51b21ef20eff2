package in_mem

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/google/uuid"
)

// InMemStore keeps articles in a map and answers page queries by evaluating
// the predicate against every article.
type InMemStore struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Article
	now         func() time.Time
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		storage: make(map[uuid.UUID]domain.Article),
		now:     time.Now,
	}
}

func (s *InMemStore) Save(_ context.Context, article domain.Article) (uuid.UUID, error) {
	article = article.WithDefaults(s.now())

	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	s.storage[article.ID] = article

	slog.Debug("Saved article to in-memory storage", "id", article.ID)
	return article.ID, nil
}

func (s *InMemStore) SaveBulk(_ context.Context, articles []domain.Article) error {
	now := s.now()

	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	for _, article := range articles {
		article = article.WithDefaults(now)
		s.storage[article.ID] = article
	}

	slog.Debug("Saved articles to in-memory storage", "count", len(articles))
	return nil
}

func (s *InMemStore) ListArticles(ctx context.Context, q pagination.Query) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	where := q.Where
	if where == nil {
		where = pagination.True{}
	}

	s.storageLock.RLock()
	matched := make([]domain.Article, 0, len(s.storage))
	for _, a := range s.storage {
		if where.Match(domain.ArticleRow(a)) {
			matched = append(matched, a)
		}
	}
	s.storageLock.RUnlock()

	slices.SortFunc(matched, domain.CompareArticles)
	if q.Order.Descending {
		slices.Reverse(matched)
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *InMemStore) Ping(context.Context) error {
	return nil
}

func (s *InMemStore) Close(context.Context) error {
	return nil
}
