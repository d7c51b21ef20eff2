package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/google/uuid"
)

// Store indexes articles into a single index and pages them with
// search_after over (created_at, id).
type Store struct {
	client    *elasticsearch.TypedClient
	indexName string
	now       func() time.Time
}

// Document is the indexed form of an article.
type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	SourceName  string    `json:"source_name"`
	Category    string    `json:"category"`
}

func NewStore(ctx context.Context, config ClientConfig) (*Store, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	store := &Store{
		client:    client,
		indexName: config.IndexName,
		now:       time.Now,
	}

	if err := store.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return store, nil
}

func (e *Store) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	article = article.WithDefaults(e.now())
	doc := toDocument(article)

	res, err := e.client.Index(e.indexName).
		Id(doc.ID).
		Document(doc).
		Refresh(refresh.Waitfor).
		Do(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to index document: %w", err)
	}

	slog.Debug("Document indexed", "id", doc.ID, "index", e.indexName, "result", res.Result)
	return article.ID, nil
}

func (e *Store) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    4,
		FlushBytes:    5e+6,
		FlushInterval: 30 * time.Second,
		Refresh:       "wait_for",
	})
	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var failed atomic.Int64
	now := e.now()
	for _, article := range articles {
		doc := toDocument(article.WithDefaults(now))

		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document %s: %w", doc.ID, err)
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(body),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			return fmt.Errorf("failed to add document %s to bulk indexer: %w", doc.ID, err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	stats := bi.Stats()
	slog.Info("Bulk indexing completed",
		"indexed", stats.NumIndexed,
		"failed", stats.NumFailed,
		"index", e.indexName)

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d out of %d articles", n, len(articles))
	}
	return nil
}

func toDocument(a domain.Article) Document {
	return Document{
		ID:          a.ID.String(),
		Title:       a.Title,
		Author:      a.Author,
		Description: a.Description,
		URL:         a.URL,
		Language:    a.Language,
		CreatedAt:   a.CreatedAt,
		SourceName:  a.Metadata.SourceName,
		Category:    a.Metadata.Category,
	}
}

func (d Document) article() (domain.Article, error) {
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

func (e *Store) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	mappings := indexMappings()
	res, err := e.client.Indices.Create(e.indexName).Mappings(&mappings).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", e.indexName)
	return nil
}

// created_at is date_nanos so that search_after keys keep full precision.
func indexMappings() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":          types.NewKeywordProperty(),
			"title":       textWithKeyword(),
			"author":      textWithKeyword(),
			"description": types.NewTextProperty(),
			"url":         types.NewKeywordProperty(),
			"language":    types.NewKeywordProperty(),
			"created_at":  types.NewDateNanosProperty(),
			"source_name": textWithKeyword(),
			"category":    types.NewKeywordProperty(),
		},
	}
}

func textWithKeyword() types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}

func (e *Store) Ping(ctx context.Context) error {
	ok, err := e.client.Ping().Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	if !ok {
		return fmt.Errorf("elasticsearch is not reachable")
	}
	return nil
}

func (e *Store) Close(context.Context) error {
	return nil
}
