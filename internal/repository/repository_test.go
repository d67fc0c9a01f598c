package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Clark-Hu/movies-api/internal/catalog"
	"github.com/Clark-Hu/movies-api/internal/domain"
	"github.com/Clark-Hu/movies-api/internal/repository"
	"github.com/Clark-Hu/movies-api/internal/repository/repotest"
)

var _ catalog.Store = (*repository.Repository)(nil)

func newSeededRepo(t testing.TB) *repository.Repository {
	t.Helper()
	repo := repository.NewWithPool(repotest.NewPool(t, "movies_test"))
	if err := repo.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func TestRepository_SeedAndList(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	// A second seed must not duplicate anything.
	if err := repo.Seed(ctx); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	movies, err := repo.ListMovies(ctx)
	if err != nil {
		t.Fatalf("ListMovies: %v", err)
	}
	if len(movies) != 6 {
		t.Fatalf("movies = %d, want 6", len(movies))
	}
	for i, m := range movies {
		if m.ID != i+1 {
			t.Fatalf("movie %d id = %d, want ascending ids", i, m.ID)
		}
	}

	ratings, err := repo.ListRatings(ctx)
	if err != nil {
		t.Fatalf("ListRatings: %v", err)
	}
	if len(ratings) != 16 {
		t.Fatalf("ratings = %d, want 16", len(ratings))
	}

	stuart, err := repo.ListRatingsByUser(ctx, "Stuart")
	if err != nil {
		t.Fatalf("ListRatingsByUser: %v", err)
	}
	want := []int{5, 3, 2, 3, 5, 2}
	if len(stuart) != len(want) {
		t.Fatalf("Stuart rows = %d, want %d", len(stuart), len(want))
	}
	for i, r := range stuart {
		if r.Rating != want[i] || r.MovieID != i+1 {
			t.Fatalf("Stuart row %d = %+v, want movie %d rating %d", i, r, i+1, want[i])
		}
	}
}

func TestRepository_GetMovie(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	m, err := repo.GetMovie(ctx, 1)
	if err != nil {
		t.Fatalf("GetMovie: %v", err)
	}
	if m.Title != "The Shawshank Redemption" || m.Genres != "Crime,Drama" {
		t.Fatalf("GetMovie = %+v", m)
	}

	if _, err := repo.GetMovie(ctx, 72); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetMovie(72) error = %v, want ErrNotFound", err)
	}
}

func TestRepository_UpsertRating(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	inserted, err := repo.UpsertRating(ctx, "Mary", 1, 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if inserted {
		t.Fatalf("expected update, not insert")
	}
	got, err := repo.GetRating(ctx, "Mary", 1)
	if err != nil {
		t.Fatalf("GetRating: %v", err)
	}
	if got.Rating != 4 {
		t.Fatalf("rating = %d, want 4", got.Rating)
	}

	inserted, err = repo.UpsertRating(ctx, "Wendy", 1, 5)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !inserted {
		t.Fatalf("expected insert for new pair")
	}
	ratings, _ := repo.ListRatings(ctx)
	if len(ratings) != 17 {
		t.Fatalf("ratings = %d, want 17", len(ratings))
	}

	if _, err := repo.GetRating(ctx, "missing", 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing rating, got %v", err)
	}
}

func TestRepository_RatingRangeConstraint(t *testing.T) {
	repo := newSeededRepo(t)
	if _, err := repo.UpsertRating(context.Background(), "Mary", 1, 6); err == nil {
		t.Fatalf("expected check constraint violation for rating 6")
	}
}

func TestRepository_HasUserRatings(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	ok, err := repo.HasUserRatings(ctx, "Wendy")
	if err != nil || !ok {
		t.Fatalf("HasUserRatings(Wendy) = %v, %v", ok, err)
	}
	ok, err = repo.HasUserRatings(ctx, "bad user")
	if err != nil || ok {
		t.Fatalf("HasUserRatings(bad user) = %v, %v", ok, err)
	}
}

func TestRepository_ConcurrentUpsertsSamePair(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.UpsertRating(ctx, "Stuart", 6, i%5+1); err != nil {
				t.Errorf("upsert %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	rows, err := repo.ListRatingsByUser(ctx, "Stuart")
	if err != nil {
		t.Fatalf("ListRatingsByUser: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("Stuart rows = %d, want 6", len(rows))
	}
}

func TestRepository_ServiceOnPostgres(t *testing.T) {
	repo := newSeededRepo(t)
	svc := catalog.NewService(repo, nil)
	ctx := context.Background()

	top, err := svc.TopRated(ctx)
	if err != nil {
		t.Fatalf("TopRated: %v", err)
	}
	if top[0].Title != "Pan's Labyrinth" || top[0].Rating != 4.3 {
		t.Fatalf("top[0] = %+v, want Pan's Labyrinth 4.3", top[0])
	}

	userTop, err := svc.TopRatedForUser(ctx, "Stuart")
	if err != nil {
		t.Fatalf("TopRatedForUser: %v", err)
	}
	if len(userTop) != 5 || userTop[4].Title != "Moana" {
		t.Fatalf("Stuart top = %+v, want Moana last", userTop)
	}

	if _, err := repo.InsertMovie(ctx, domain.Movie{ID: 7, Title: "Unrated", YearOfRelease: 2020, RunningTime: 100, Genres: "Drama"}); err != nil {
		t.Fatalf("InsertMovie: %v", err)
	}
	if err := svc.UpsertRating(ctx, domain.UserRating{UserID: "Mary", MovieID: 7, Rating: 1}); err != nil {
		t.Fatalf("UpsertRating: %v", err)
	}
	if err := svc.UpsertRating(ctx, domain.UserRating{UserID: "Mary", MovieID: 8, Rating: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown movie error = %v, want ErrNotFound", err)
	}
}

func BenchmarkRatingsRepositoryUpsert(b *testing.B) {
	repo := newSeededRepo(b)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.UpsertRating(ctx, fmt.Sprintf("bench-%d", i), 1, 4); err != nil {
			b.Fatalf("upsert: %v", err)
		}
	}
}

func TestRepository_HealthCheck(t *testing.T) {
	pool := repotest.NewPool(t, "movies_test_health")
	repo := repository.NewWithPool(pool)
	ctx := context.Background()

	if err := repo.HealthCheck(ctx); err != nil {
		t.Fatalf("HealthCheck on live pool: %v", err)
	}

	pool.Close()
	if err := repo.HealthCheck(ctx); err == nil {
		t.Fatal("HealthCheck after pool close returned nil error")
	}
}
