// Package sqlite stores articles in a SQLite database file.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/internal/storage/sqlq"
	"github.com/DjordjeVuckovic/keypage/pkg/pagination"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	author      TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	language    TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	source_name TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS articles_created_at_id_idx ON articles (created_at, id);`

const (
	articleFields  = `id, title, author, description, url, language, created_at, source_name, category`
	selectArticles = `SELECT ` + articleFields + ` FROM articles`
	insertArticle  = `INSERT INTO articles (` + articleFields + `)
		VALUES (:id, :title, :author, :description, :url, :language, :created_at, :source_name, :category)`
)

// insertBatch keeps a bulk insert below SQLite's bind variable limit.
const insertBatch = 500

// created_at is stored as Unix nanoseconds, which covers roughly the
// years 1678 to 2262.
var (
	minTime = time.Unix(0, math.MinInt64).UTC()
	maxTime = time.Unix(0, math.MaxInt64).UTC()
)

var ErrTimeOutOfRange = errors.New("created_at is outside the storable range")

func unixNano(t time.Time) (int64, error) {
	if t.Before(minTime) || t.After(maxTime) {
		return 0, fmt.Errorf("%w: %s", ErrTimeOutOfRange, t.Format(time.RFC3339))
	}
	return t.UnixNano(), nil
}

// clampUnixNano maps a cursor time onto the stored range, so a far future
// Next cursor selects nothing instead of wrapping around to the oldest rows.
func clampUnixNano(t time.Time) int64 {
	switch {
	case t.Before(minTime):
		return math.MinInt64
	case t.After(maxTime):
		return math.MaxInt64
	}
	return t.UnixNano()
}

// Dialect stores created_at as Unix nanoseconds and ids as canonical
// strings, so both compare in key order.
var Dialect = sqlq.Dialect{
	Name:        "sqlite",
	Placeholder: func(int) string { return "?" },
	Value: func(v any) any {
		switch v := v.(type) {
		case time.Time:
			return clampUnixNano(v)
		case uuid.UUID:
			return v.String()
		}
		return v
	},
}

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens the database at path and creates the articles table if
// missing.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create articles schema: %w", err)
	}

	slog.Info("SQLite article store ready", "path", path)
	return &Store{db: db, now: time.Now}, nil
}

type articleRow struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Author      string `db:"author"`
	Description string `db:"description"`
	URL         string `db:"url"`
	Language    string `db:"language"`
	CreatedAt   int64  `db:"created_at"`
	SourceName  string `db:"source_name"`
	Category    string `db:"category"`
}

func toRow(a domain.Article) (articleRow, error) {
	createdAt, err := unixNano(a.CreatedAt)
	if err != nil {
		return articleRow{}, fmt.Errorf("article %s: %w", a.ID, err)
	}
	return articleRow{
		ID:          a.ID.String(),
		Title:       a.Title,
		Author:      a.Author,
		Description: a.Description,
		URL:         a.URL,
		Language:    a.Language,
		CreatedAt:   createdAt,
		SourceName:  a.Metadata.SourceName,
		Category:    a.Metadata.Category,
	}, nil
}

func (r articleRow) article() (domain.Article, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Article{}, fmt.Errorf("invalid article id %q: %w", r.ID, err)
	}
	return domain.Article{
		ID:          id,
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
		URL:         r.URL,
		Language:    r.Language,
		CreatedAt:   time.Unix(0, r.CreatedAt).UTC(),
		Metadata: domain.ArticleMetadata{
			SourceName: r.SourceName,
			Category:   r.Category,
		},
	}, nil
}

func (s *Store) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	article = article.WithDefaults(s.now())
	row, err := toRow(article)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := s.db.NamedExecContext(ctx, insertArticle, row); err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert article: %w", err)
	}
	return article.ID, nil
}

func (s *Store) SaveBulk(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}
	now := s.now()
	rows := make([]articleRow, len(articles))
	for i, a := range articles {
		row, err := toRow(a.WithDefaults(now))
		if err != nil {
			return err
		}
		rows[i] = row
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(rows); start += insertBatch {
		end := min(start+insertBatch, len(rows))
		if _, err := tx.NamedExecContext(ctx, insertArticle, rows[start:end]); err != nil {
			return fmt.Errorf("failed to insert articles: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit articles: %w", err)
	}
	slog.Debug("Saved articles to sqlite", "count", len(rows))
	return nil
}

func (s *Store) ListArticles(ctx context.Context, q pagination.Query) ([]domain.Article, error) {
	query, args, err := sqlq.Select(Dialect, selectArticles, q)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	var rows []articleRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to execute list query: %w", err)
	}

	articles := make([]domain.Article, 0, len(rows))
	for _, r := range rows {
		a, err := r.article()
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
