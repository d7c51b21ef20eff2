// Package mongo keeps articles in a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "articles"

type Config struct {
	URI      string
	Database string
}

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

// articleDoc stores ids as canonical strings, which sort in key order.
type articleDoc struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Author      string    `bson:"author"`
	Description string    `bson:"description"`
	URL         string    `bson:"url"`
	Language    string    `bson:"language"`
	CreatedAt   time.Time `bson:"created_at"`
	SourceName  string    `bson:"source_name"`
	Category    string    `bson:"category"`
}

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	collection := client.Database(cfg.Database).Collection(collectionName)
	index := mongo.IndexModel{
		Keys: bson.D{{Key: domain.ColumnCreatedAt, Value: 1}, {Key: "_id", Value: 1}},
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create key index: %w", err)
	}

	slog.Info("Connected to MongoDB", "database", cfg.Database)
	return &Store{client: client, collection: collection, now: time.Now}, nil
}

// BSON dates keep milliseconds only.
func toDoc(a domain.Article) articleDoc {
	return articleDoc{
		ID:          a.ID.String(),
		Title:       a.Title,
		Author:      a.Author,
		Description: a.Description,
		URL:         a.URL,
		Language:    a.Language,
		CreatedAt:   a.CreatedAt.Truncate(time.Millisecond),
		SourceName:  a.Metadata.SourceName,
		Category:    a.Metadata.Category,
	}
}

func (d articleDoc) article() (domain.Article, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Article{}, fmt.Errorf("invalid article id %q: %w", d.ID, err)
	}
	return domain.Article{
		ID:          id,
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		URL:         d.URL,
		Language:    d.Language,
		CreatedAt:   d.CreatedAt.UTC(),
		Metadata:    domain.ArticleMetadata{SourceName: d.SourceName, Category: d.Category},
	}, nil
}

func (s *Store) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	article = article.WithDefaults(s.now())
	if _, err := s.collection.InsertOne(ctx, toDoc(article)); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert article: %w", err)
	}
	return article.ID, nil
}

func (s *Store) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}
	now := s.now()
	docs := make([]any, len(articles))
	for i, a := range articles {
		docs[i] = toDoc(a.WithDefaults(now))
	}
	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert articles: %w", err)
	}
	return nil
}

func (s *Store) ListArticles(ctx context.Context, q pagination.Query) ([]domain.Article, error) {
	filter, err := Filter(q.Where)
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}

	opts := options.Find().SetSort(Sort(q.Order))
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find articles: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []articleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}

	articles := make([]domain.Article, 0, len(docs))
	for _, d := range docs {
		a, err := d.article()
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
