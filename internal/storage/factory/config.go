package factory

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/DjordjeVuckovic/keypage/internal/storage"
	"github.com/DjordjeVuckovic/keypage/internal/storage/es"
	"github.com/DjordjeVuckovic/keypage/internal/storage/mongo"
	"github.com/DjordjeVuckovic/keypage/internal/storage/pg"
	"github.com/DjordjeVuckovic/keypage/pkg/utils"
)

type StorageConfig struct {
	storage.Type
	Pg         *pg.PoolConfig
	Es         *es.ClientConfig
	Mongo      *mongo.Config
	SQLitePath string
}

func LoadEnv() (*StorageConfig, error) {
	storageType := storage.Type(os.Getenv("STORAGE_TYPE"))
	if storageType == "" {
		slog.Error("STORAGE_TYPE environment variable is not set")
		return nil, fmt.Errorf("STORAGE_TYPE environment variable is not set")
	}
	if !slices.Contains(storage.Types, storageType) {
		slog.Error("Invalid STORAGE_TYPE environment variable value", "value", storageType)
		return nil, fmt.Errorf(
			"invalid STORAGE_TYPE environment variable value: %s, expected one of %v",
			storageType, storage.Types)
	}

	cfg := &StorageConfig{Type: storageType}

	switch storageType {
	case storage.ES:
		cfg.Es = &es.ClientConfig{
			Addresses: utils.SplitList(os.Getenv("ES_ADDRESSES")),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		}
		if len(cfg.Es.Addresses) == 0 || cfg.Es.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses, "indexName", cfg.Es.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}

	case storage.PG:
		cfg.Pg = &pg.PoolConfig{ConnStr: os.Getenv("PG_CONNECTION_STRING")}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("PostgreSQL connection string is not set")
		}
		if raw := os.Getenv("PG_MAX_CONNS"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 32)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid PG_MAX_CONNS value: %q", raw)
			}
			cfg.Pg.MaxConns = int32(n)
		}

	case storage.Mongo:
		cfg.Mongo = &mongo.Config{
			URI:      os.Getenv("MONGO_URI"),
			Database: os.Getenv("MONGO_DATABASE"),
		}
		if cfg.Mongo.URI == "" || cfg.Mongo.Database == "" {
			slog.Error("MongoDB configuration is incomplete", "database", cfg.Mongo.Database)
			return nil, fmt.Errorf("mongodb configuration is incomplete: uri or database is missing")
		}

	case storage.SQLite:
		cfg.SQLitePath = os.Getenv("SQLITE_PATH")
		if cfg.SQLitePath == "" {
			slog.Error("SQLITE_PATH environment variable is not set")
			return nil, fmt.Errorf("SQLITE_PATH environment variable is not set")
		}
	}

	return cfg, nil
}
