package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Clark-Hu/movies-api/internal/domain"
	"github.com/Clark-Hu/movies-api/internal/logger"
)

// Store is the data source the catalog reads from and writes ratings to.
// List methods return rows in ascending id order.
type Store interface {
	ListMovies(ctx context.Context) ([]domain.Movie, error)
	GetMovie(ctx context.Context, id int) (domain.Movie, error)
	ListRatings(ctx context.Context) ([]domain.UserRating, error)
	ListRatingsByUser(ctx context.Context, userID string) ([]domain.UserRating, error)
	HasUserRatings(ctx context.Context, userID string) (bool, error)
	// UpsertRating overwrites the rating of an existing (user, movie) row or
	// inserts a new row. The lookup and the write are atomic.
	UpsertRating(ctx context.Context, userID string, movieID, value int) (inserted bool, err error)
	HealthCheck(ctx context.Context) error
}

// Service implements the movie lookups and the rating write path.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService builds a Service over the provided store.
func NewService(st Store, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{store: st, logger: log}
}

// HealthCheck reports whether the underlying store is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.store.HealthCheck(ctx)
}

// FindMovies returns every movie matching at least one filter criterion.
func (s *Service) FindMovies(ctx context.Context, filter domain.MovieFilter) ([]domain.Movie, error) {
	if filter.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one of title, year or genre is required", domain.ErrInvalidRequest)
	}

	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	matched := MatchMovies(movies, filter)
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: no movies match the filter", domain.ErrNotFound)
	}
	return matched, nil
}

// TopRated returns the best rated movies across all users.
func (s *Service) TopRated(ctx context.Context) ([]domain.MovieReturnItem, error) {
	ratings, err := s.store.ListRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	items := TopRated(movies, ratings)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no ratings recorded", domain.ErrNotFound)
	}
	return items, nil
}

// TopRatedForUser returns the best rated movies of a single user. A user
// without ratings is reported as an invalid request.
func (s *Service) TopRatedForUser(ctx context.Context, userID string) ([]domain.MovieReturnItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidRequest)
	}

	ratings, err := s.store.ListRatingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, fmt.Errorf("%w: user %q has no ratings", domain.ErrInvalidRequest, userID)
	}

	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return TopRatedForUser(movies, ratings), nil
}

// UpsertRating records a user's rating for a movie. Only users that already
// have at least one rating are accepted, so first-time raters get
// ErrNotFound.
func (s *Service) UpsertRating(ctx context.Context, rating domain.UserRating) error {
	known := false
	if rating.UserID != "" {
		var err error
		known, err = s.store.HasUserRatings(ctx, rating.UserID)
		if err != nil {
			return fmt.Errorf("lookup user ratings: %w", err)
		}
	}
	if !known {
		return fmt.Errorf("%w: user %q", domain.ErrNotFound, rating.UserID)
	}

	if _, err := s.store.GetMovie(ctx, rating.MovieID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: movie %d", domain.ErrNotFound, rating.MovieID)
		}
		return fmt.Errorf("get movie: %w", err)
	}

	if !domain.ValidRating(rating.Rating) {
		return fmt.Errorf("%w: rating must be between %d and %d", domain.ErrInvalidRequest, domain.MinRating, domain.MaxRating)
	}

	inserted, err := s.store.UpsertRating(ctx, rating.UserID, rating.MovieID, rating.Rating)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	s.logger.Debug("rating stored", "user", rating.UserID, "movie_id", rating.MovieID, "rating", rating.Rating, "inserted", inserted)
	return nil
}
