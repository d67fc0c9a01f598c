// Package memstore is an in-process data store for movies and ratings.
package memstore

import (
	"context"
	"sync"

	"github.com/Clark-Hu/movies-api/internal/domain"
	"github.com/Clark-Hu/movies-api/internal/seed"
)

// Store keeps movies and ratings in insertion order. It is safe for
// concurrent use.
type Store struct {
	mu           sync.RWMutex
	movies       []domain.Movie
	ratings      []domain.UserRating
	nextRatingID int
}

// New returns an empty store. Call Seed to load the fixture catalog.
func New() *Store {
	return &Store{nextRatingID: 1}
}

// Seed loads the fixture movies and ratings when the store is empty.
func (s *Store) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.movies) > 0 || len(s.ratings) > 0 {
		return nil
	}
	s.movies = append(s.movies, seed.Movies()...)
	for _, r := range seed.Ratings() {
		s.insertLocked(r.UserID, r.MovieID, r.Rating)
	}
	return nil
}

// AddMovie appends a movie. Movies with an id already present are ignored.
func (s *Store) AddMovie(m domain.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.movies {
		if existing.ID == m.ID {
			return
		}
	}
	s.movies = append(s.movies, m)
}

// AddRating appends a rating row without any validation and returns its id.
func (s *Store) AddRating(userID string, movieID, value int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(userID, movieID, value)
}

func (s *Store) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Movie, len(s.movies))
	copy(out, s.movies)
	return out, nil
}

func (s *Store) GetMovie(ctx context.Context, id int) (domain.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.Movie{}, domain.ErrNotFound
}

func (s *Store) ListRatings(ctx context.Context) ([]domain.UserRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.UserRating, len(s.ratings))
	copy(out, s.ratings)
	return out, nil
}

func (s *Store) ListRatingsByUser(ctx context.Context, userID string) ([]domain.UserRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.UserRating, 0)
	for _, r := range s.ratings {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) HasUserRatings(ctx context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.ratings {
		if r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// UpsertRating updates the (user, movie) row in place or appends a new one.
func (s *Store) UpsertRating(ctx context.Context, userID string, movieID, value int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ratings {
		if s.ratings[i].UserID == userID && s.ratings[i].MovieID == movieID {
			s.ratings[i].Rating = value
			return false, nil
		}
	}
	s.insertLocked(userID, movieID, value)
	return true, nil
}

// HealthCheck always succeeds for the in-memory store.
func (s *Store) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *Store) insertLocked(userID string, movieID, value int) int {
	id := s.nextRatingID
	s.nextRatingID++
	s.ratings = append(s.ratings, domain.UserRating{
		ID:      id,
		UserID:  userID,
		MovieID: movieID,
		Rating:  value,
	})
	return id
}
