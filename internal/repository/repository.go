package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movies-api/internal/domain"
	"github.com/Clark-Hu/movies-api/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = fmt.Errorf("repository: %w", domain.ErrNotFound)

// Repository aggregates the movie and rating repositories and satisfies
// catalog.Store.
type Repository struct {
	*MoviesRepository
	*RatingsRepository
	pool *pgxpool.Pool
	st   *store.Store
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	pool := st.Pool()
	return &Repository{
		MoviesRepository:  &MoviesRepository{pool: pool},
		RatingsRepository: &RatingsRepository{pool: pool},
		pool:              pool,
		st:                st,
	}
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return New(store.Wrap(pool, store.Options{}))
}

// HealthCheck verifies the database is reachable, bounded by the store's
// connection timeout.
func (r *Repository) HealthCheck(ctx context.Context) error {
	return r.st.HealthCheck(ctx)
}
