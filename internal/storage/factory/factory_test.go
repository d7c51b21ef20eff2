package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/keypage/internal/storage"
	"github.com/DjordjeVuckovic/keypage/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/keypage/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *StorageConfig)
	}{
		{name: "missing type", env: map[string]string{}, wantErr: true},
		{name: "unknown type", env: map[string]string{"STORAGE_TYPE": "redis"}, wantErr: true},
		{
			name: "in memory",
			env:  map[string]string{"STORAGE_TYPE": "in_mem"},
			check: func(t *testing.T, cfg *StorageConfig) {
				assert.Equal(t, storage.InMem, cfg.Type)
			},
		},
		{
			name: "postgres",
			env:  map[string]string{"STORAGE_TYPE": "pg", "PG_CONNECTION_STRING": "postgres://localhost/articles", "PG_MAX_CONNS": "8"},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Pg)
				assert.Equal(t, "postgres://localhost/articles", cfg.Pg.ConnStr)
				assert.Equal(t, int32(8), cfg.Pg.MaxConns)
			},
		},
		{name: "postgres without dsn", env: map[string]string{"STORAGE_TYPE": "pg"}, wantErr: true},
		{
			name:    "postgres bad max conns",
			env:     map[string]string{"STORAGE_TYPE": "pg", "PG_CONNECTION_STRING": "postgres://x", "PG_MAX_CONNS": "0"},
			wantErr: true,
		},
		{
			name: "elasticsearch",
			env:  map[string]string{"STORAGE_TYPE": "es", "ES_ADDRESSES": "http://a:9200, http://b:9200", "ES_INDEX_NAME": "articles"},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Es)
				assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.Es.Addresses)
			},
		},
		{name: "elasticsearch without addresses", env: map[string]string{"STORAGE_TYPE": "es", "ES_INDEX_NAME": "articles"}, wantErr: true},
		{
			name: "mongo",
			env:  map[string]string{"STORAGE_TYPE": "mongo", "MONGO_URI": "mongodb://localhost", "MONGO_DATABASE": "news"},
			check: func(t *testing.T, cfg *StorageConfig) {
				require.NotNil(t, cfg.Mongo)
				assert.Equal(t, "news", cfg.Mongo.Database)
			},
		},
		{name: "mongo without database", env: map[string]string{"STORAGE_TYPE": "mongo", "MONGO_URI": "mongodb://localhost"}, wantErr: true},
		{
			name: "sqlite",
			env:  map[string]string{"STORAGE_TYPE": "sqlite", "SQLITE_PATH": "articles.db"},
			check: func(t *testing.T, cfg *StorageConfig) {
				assert.Equal(t, "articles.db", cfg.SQLitePath)
			},
		},
		{name: "sqlite without path", env: map[string]string{"STORAGE_TYPE": "sqlite"}, wantErr: true},
	}

	keys := []string{"STORAGE_TYPE", "PG_CONNECTION_STRING", "PG_MAX_CONNS", "ES_ADDRESSES", "ES_INDEX_NAME",
		"ES_USERNAME", "ES_PASSWORD", "MONGO_URI", "MONGO_DATABASE", "SQLITE_PATH"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, tt.env[k])
			}

			cfg, err := LoadEnv()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	s, err := NewStore(ctx, &StorageConfig{Type: storage.InMem})
	require.NoError(t, err)
	assert.IsType(t, &in_mem.InMemStore{}, s)

	s, err = NewStore(ctx, &StorageConfig{Type: storage.SQLite, SQLitePath: filepath.Join(t.TempDir(), "a.db")})
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, s)
	require.NoError(t, s.Close(ctx))

	_, err = NewStore(ctx, &StorageConfig{Type: storage.PG})
	assert.Error(t, err)

	_, err = NewStore(ctx, &StorageConfig{Type: "redis"})
	assert.EqualError(t, err, "unsupported storer type: redis")
}
