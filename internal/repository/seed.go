package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Clark-Hu/movies-api/internal/seed"
)

// Seed loads the fixture catalog. Movies are inserted by id and skipped when
// present; ratings are only loaded into an empty ratings table.
func (r *Repository) Seed(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, m := range seed.Movies() {
		_, err := tx.Exec(ctx, `
            INSERT INTO movies (id, title, year_of_release, running_time, genres)
            VALUES ($1,$2,$3,$4,$5)
            ON CONFLICT (id) DO NOTHING
        `, m.ID, m.Title, m.YearOfRelease, m.RunningTime, m.Genres)
		if err != nil {
			return fmt.Errorf("seed movie %d: %w", m.ID, err)
		}
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM user_ratings`).Scan(&count); err != nil {
		return fmt.Errorf("count ratings: %w", err)
	}
	if count == 0 {
		ratings := seed.Ratings()
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"user_ratings"},
			[]string{"user_id", "movie_id", "rating"},
			pgx.CopyFromSlice(len(ratings), func(i int) ([]any, error) {
				return []any{ratings[i].UserID, ratings[i].MovieID, ratings[i].Rating}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("seed ratings: %w", err)
		}
	}

	return tx.Commit(ctx)
}
