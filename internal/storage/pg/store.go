package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store keeps articles in the articles table. Pages are served from the
// (created_at, id) index created by db/migrations.
type Store struct {
	pool *ConnectionPool
	db   *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{pool: pool, db: pool.conn}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}
