package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movies-api/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `id, title, year_of_release, running_time, genres`

// ListMovies returns every movie ordered by id.
func (r *MoviesRepository) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY id`, movieColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie fetches a movie by its identifier.
func (r *MoviesRepository) GetMovie(ctx context.Context, id int) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// InsertMovie stores a movie under its given id. Existing ids are left
// untouched and reported as not inserted.
func (r *MoviesRepository) InsertMovie(ctx context.Context, m domain.Movie) (bool, error) {
	const query = `
        INSERT INTO movies (id, title, year_of_release, running_time, genres)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (id) DO NOTHING
    `
	tag, err := r.pool.Exec(ctx, query, m.ID, m.Title, m.YearOfRelease, m.RunningTime, m.Genres)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.YearOfRelease,
		&movie.RunningTime,
		&movie.Genres,
	)
	return movie, err
}
