// Package seed loads article fixtures from YAML and writes them to a store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/keypage/internal/apperr"
	"github.com/DjordjeVuckovic/keypage/internal/domain"
	"github.com/DjordjeVuckovic/keypage/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const DefaultBatchSize = 500

var validate = newValidator()

// newValidator reports fields by their yaml names so errors point at the
// fixture file rather than the Go struct.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldError turns the first validator failure into a field-scoped error,
// e.g. "articles[2].title is required".
func fieldError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return apperr.NewValidationWrap("invalid fixture file", err)
	}
	fe := ves[0]
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return apperr.NewFieldValidation(field, "is required")
	case "url":
		return apperr.NewFieldValidation(field, "must be a valid URL")
	default:
		return apperr.NewFieldValidation(field, "is invalid")
	}
}

type File struct {
	Articles []Entry `yaml:"articles" validate:"dive"`
}

type Entry struct {
	ID          uuid.UUID `yaml:"id"`
	Title       string    `yaml:"title" validate:"required"`
	Author      string    `yaml:"author"`
	Description string    `yaml:"description"`
	URL         string    `yaml:"url" validate:"omitempty,url"`
	Language    string    `yaml:"language"`
	CreatedAt   time.Time `yaml:"created_at"`
	SourceName  string    `yaml:"source_name"`
	Category    string    `yaml:"category"`
}

func (e Entry) Article() domain.Article {
	return domain.Article{
		ID:          e.ID,
		Title:       e.Title,
		Author:      e.Author,
		Description: e.Description,
		URL:         e.URL,
		Language:    e.Language,
		CreatedAt:   e.CreatedAt,
		Metadata:    domain.ArticleMetadata{SourceName: e.SourceName, Category: e.Category},
	}
}

type YAMLLoader struct {
	reader io.Reader
}

func NewYAMLLoader(reader io.Reader) *YAMLLoader {
	return &YAMLLoader{reader: reader}
}

// Load decodes and validates the fixture file. Unknown fields are
// rejected so typos do not silently drop data.
func (l *YAMLLoader) Load() ([]domain.Article, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var f File
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.NewValidation("fixture file is empty")
		}
		return nil, apperr.NewValidationWrap("failed to decode fixture file", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fieldError(err)
	}

	articles := make([]domain.Article, len(f.Articles))
	for i, e := range f.Articles {
		articles[i] = e.Article()
	}
	return articles, nil
}

// Seed saves articles in batches of batchSize.
func Seed(ctx context.Context, s storage.Storer, articles []domain.Article, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	for start := 0; start < len(articles); start += batchSize {
		end := min(start+batchSize, len(articles))
		if err := s.SaveBulk(ctx, articles[start:end]); err != nil {
			return fmt.Errorf("failed to save articles %d-%d: %w", start, end, err)
		}
		slog.Info("Seeded article batch", "from", start, "to", end, "total", len(articles))
	}
	return nil
}
