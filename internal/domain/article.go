package domain

import (
	"time"

	"github.com/google/uuid"
)

const ArticleDefaultLanguage = "english"

type Article struct {
	ID          uuid.UUID       `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Author      string          `json:"author,omitempty" yaml:"author"`
	Description string          `json:"description,omitempty" yaml:"description"`
	URL         string          `json:"url,omitempty" yaml:"url"`
	Language    string          `json:"language,omitempty" yaml:"language"`
	CreatedAt   time.Time       `json:"createdAt" yaml:"created_at"`
	Metadata    ArticleMetadata `json:"metadata" yaml:"metadata"`
}

type ArticleMetadata struct {
	SourceName string `json:"sourceName,omitempty" yaml:"source_name"`
	Category   string `json:"category,omitempty" yaml:"category"`
}

// WithDefaults fills the identity and ordering fields a stored article
// must have. CreatedAt is truncated to microseconds, the precision Postgres
// keeps, so keys derived before and after a round trip agree.
func (a Article) WithDefaults(now time.Time) Article {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Language == "" {
		a.Language = ArticleDefaultLanguage
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.CreatedAt = a.CreatedAt.UTC().Truncate(time.Microsecond)
	return a
}
