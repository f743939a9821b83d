package repository

import (
	"github.com/draftforge/draftforge/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements the service storage ports on Postgres.
type Store struct {
	pool *pgxpool.Pool
}

var _ service.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}
