package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/Clark-Hu/movies-api/internal/domain"
)

// TopN is the number of items returned by the top-rated views.
const TopN = 5

// MatchMovies returns the movies satisfying any supplied criterion of the
// filter, in input order. Title and genre match by case-sensitive substring,
// year by equality. Unset criteria never match.
func MatchMovies(movies []domain.Movie, filter domain.MovieFilter) []domain.Movie {
	matched := make([]domain.Movie, 0)
	for _, m := range movies {
		if matchesFilter(m, filter) {
			matched = append(matched, m)
		}
	}
	return matched
}

func matchesFilter(m domain.Movie, f domain.MovieFilter) bool {
	switch {
	case f.Year != 0 && m.YearOfRelease == f.Year:
		return true
	case f.Title != "" && strings.Contains(m.Title, f.Title):
		return true
	case f.Genre != "" && strings.Contains(m.Genres, f.Genre):
		return true
	}
	return false
}

type ratingTotal struct {
	movieID int
	sum     int
	count   int
}

// TopRated averages the ratings of every rated movie, rounds the mean to one
// decimal and returns at most TopN items ordered by rating desc, title asc.
// Ratings referencing unknown movies are dropped by the join.
func TopRated(movies []domain.Movie, ratings []domain.UserRating) []domain.MovieReturnItem {
	totals := make([]*ratingTotal, 0)
	byMovie := make(map[int]*ratingTotal)
	for _, r := range ratings {
		t, ok := byMovie[r.MovieID]
		if !ok {
			t = &ratingTotal{movieID: r.MovieID}
			byMovie[r.MovieID] = t
			totals = append(totals, t)
		}
		t.sum += r.Rating
		t.count++
	}

	index := indexMovies(movies)
	items := make([]domain.MovieReturnItem, 0, len(totals))
	for _, t := range totals {
		m, ok := index[t.movieID]
		if !ok {
			continue
		}
		items = append(items, toReturnItem(m, RoundRating(t.sum, t.count)))
	}

	sortByRatingThenTitle(items)
	return truncate(items, TopN)
}

// TopRatedForUser selects the user's TopN ratings by raw rating order, joins
// them to their movies and only then orders the selection by rating desc,
// title asc. Ties at the cut-off are settled by input order, not by title.
func TopRatedForUser(movies []domain.Movie, userRatings []domain.UserRating) []domain.MovieReturnItem {
	selected := make([]domain.UserRating, len(userRatings))
	copy(selected, userRatings)
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Rating > selected[j].Rating
	})
	if len(selected) > TopN {
		selected = selected[:TopN]
	}

	index := indexMovies(movies)
	items := make([]domain.MovieReturnItem, 0, len(selected))
	for _, r := range selected {
		m, ok := index[r.MovieID]
		if !ok {
			continue
		}
		items = append(items, toReturnItem(m, float64(r.Rating)))
	}

	sortByRatingThenTitle(items)
	return items
}

// RoundRating returns sum/count rounded to one decimal place, halves away
// from zero. count must be positive.
func RoundRating(sum, count int) float64 {
	return math.Round(float64(sum*10)/float64(count)) / 10
}

func indexMovies(movies []domain.Movie) map[int]domain.Movie {
	index := make(map[int]domain.Movie, len(movies))
	for _, m := range movies {
		index[m.ID] = m
	}
	return index
}

func toReturnItem(m domain.Movie, rating float64) domain.MovieReturnItem {
	return domain.MovieReturnItem{
		ID:            m.ID,
		Title:         m.Title,
		YearOfRelease: m.YearOfRelease,
		RunningTime:   m.RunningTime,
		Rating:        rating,
	}
}

func sortByRatingThenTitle(items []domain.MovieReturnItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Rating != items[j].Rating {
			return items[i].Rating > items[j].Rating
		}
		return items[i].Title < items[j].Title
	})
}

func truncate(items []domain.MovieReturnItem, n int) []domain.MovieReturnItem {
	if len(items) > n {
		return items[:n]
	}
	return items
}
