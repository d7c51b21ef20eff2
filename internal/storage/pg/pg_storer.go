package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var articleColumns = []string{"id", "title", "author", "description", "url", "language", "created_at", "metadata"}

func (s *Store) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	article = article.WithDefaults(time.Now())

	metadataJSON, err := json.Marshal(article.Metadata)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	cmd := `
        INSERT INTO articles (id, title, author, description, url, language, created_at, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id;
    `
	var id uuid.UUID
	err = s.db.QueryRow(
		ctx,
		cmd,
		article.ID,
		article.Title,
		article.Author,
		article.Description,
		article.URL,
		article.Language,
		article.CreatedAt,
		metadataJSON,
	).Scan(&id)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed to insert article: %w", err)
	}

	return id, nil
}

func (s *Store) SaveBulk(ctx context.Context, articles []domain.Article) error {
	rows := make([][]interface{}, len(articles))
	now := time.Now()

	for i, a := range articles {
		a = a.WithDefaults(now)

		metadataJSON, err := json.Marshal(a.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for article %d: %w", i, err)
		}

		rows[i] = []interface{}{
			a.ID,
			a.Title,
			a.Author,
			a.Description,
			a.URL,
			a.Language,
			a.CreatedAt,
			metadataJSON,
		}
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"articles"},
		articleColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert articles: %w", err)
	}
	return nil
}
