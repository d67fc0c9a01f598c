package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movies-api/internal/domain"
)

// RatingsRepository provides helpers for user ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

const ratingColumns = `id, user_id, movie_id, rating`

// ListRatings returns every rating ordered by id.
func (r *RatingsRepository) ListRatings(ctx context.Context) ([]domain.UserRating, error) {
	return r.queryRatings(ctx, `SELECT `+ratingColumns+` FROM user_ratings ORDER BY id`)
}

// ListRatingsByUser returns the user's ratings ordered by id.
func (r *RatingsRepository) ListRatingsByUser(ctx context.Context, userID string) ([]domain.UserRating, error) {
	return r.queryRatings(ctx, `SELECT `+ratingColumns+` FROM user_ratings WHERE user_id = $1 ORDER BY id`, userID)
}

// HasUserRatings reports whether the user has rated anything.
func (r *RatingsRepository) HasUserRatings(ctx context.Context, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM user_ratings WHERE user_id = $1)`, userID).Scan(&exists)
	return exists, err
}

// GetRating retrieves the rating for a specific user/movie combination.
func (r *RatingsRepository) GetRating(ctx context.Context, userID string, movieID int) (domain.UserRating, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+ratingColumns+` FROM user_ratings WHERE user_id = $1 AND movie_id = $2`, userID, movieID)
	rating, err := scanRating(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserRating{}, ErrNotFound
		}
		return domain.UserRating{}, err
	}
	return rating, nil
}

// UpsertRating inserts or updates a rating and indicates whether it was newly
// created. The unique (user_id, movie_id) constraint makes the write atomic.
func (r *RatingsRepository) UpsertRating(ctx context.Context, userID string, movieID, value int) (bool, error) {
	const query = `
        INSERT INTO user_ratings (user_id, movie_id, rating)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, movie_id)
        DO UPDATE SET rating = EXCLUDED.rating
        RETURNING (xmax = 0) AS inserted
    `
	var inserted bool
	if err := r.pool.QueryRow(ctx, query, userID, movieID, value).Scan(&inserted); err != nil {
		return false, err
	}
	return inserted, nil
}

func (r *RatingsRepository) queryRatings(ctx context.Context, query string, args ...interface{}) ([]domain.UserRating, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.UserRating, 0)
	for rows.Next() {
		rating, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

func scanRating(row pgx.Row) (domain.UserRating, error) {
	var rating domain.UserRating
	err := row.Scan(&rating.ID, &rating.UserID, &rating.MovieID, &rating.Rating)
	return rating, err
}
