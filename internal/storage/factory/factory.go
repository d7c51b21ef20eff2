package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/keypage/internal/storage"
	"github.com/DjordjeVuckovic/keypage/internal/storage/es"
	"github.com/DjordjeVuckovic/keypage/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/keypage/internal/storage/mongo"
	"github.com/DjordjeVuckovic/keypage/internal/storage/pg"
	"github.com/DjordjeVuckovic/keypage/internal/storage/sqlite"
)

// NewStore connects the backend selected by cfg.Type.
func NewStore(ctx context.Context, cfg *StorageConfig) (storage.Store, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewStore(pool), nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		return es.NewStore(ctx, *cfg.Es)

	case storage.Mongo:
		if cfg.Mongo == nil {
			return nil, fmt.Errorf("missing MongoDB configuration")
		}
		return mongo.NewStore(ctx, *cfg.Mongo)

	case storage.SQLite:
		return sqlite.Open(ctx, cfg.SQLitePath)

	case storage.InMem:
		return in_mem.NewInMemStore(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
