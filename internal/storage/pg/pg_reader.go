package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/internal/storage/sqlq"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/jackc/pgx/v5"
)

const selectArticles = `SELECT id, title, author, description, url, language, created_at, metadata FROM articles`

func (s *Store) ListArticles(ctx context.Context, q pagination.Query) ([]domain.Article, error) {
	query, args, err := sqlq.Select(sqlq.Postgres, selectArticles, q)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	slog.Debug("Executing pg article page query",
		"has_cursor", q.Seek != nil,
		"descending", q.Order.Descending,
		"limit", q.Limit)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list query: %w", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0, q.Limit)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return articles, nil
}

func scanArticle(rows pgx.Rows) (domain.Article, error) {
	var article domain.Article
	var metadataJSON []byte

	if err := rows.Scan(
		&article.ID,
		&article.Title,
		&article.Author,
		&article.Description,
		&article.URL,
		&article.Language,
		&article.CreatedAt,
		&metadataJSON,
	); err != nil {
		return domain.Article{}, fmt.Errorf("failed to scan article: %w", err)
	}

	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &article.Metadata); err != nil {
			return domain.Article{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	article.CreatedAt = article.CreatedAt.UTC()

	return article, nil
}
