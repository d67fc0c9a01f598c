// Package seed holds the fixture catalog loaded into a fresh data store.
package seed

import "github.com/Clark-Hu/movies-api/internal/domain"

// Movies returns the fixture movies in id order.
func Movies() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "The Shawshank Redemption", YearOfRelease: 1994, RunningTime: 142, Genres: "Crime,Drama"},
		{ID: 2, Title: "American Beauty", YearOfRelease: 1999, RunningTime: 122, Genres: "Drama"},
		{ID: 3, Title: "Moana", YearOfRelease: 2016, RunningTime: 107, Genres: "Animation, Adventure, Comedy"},
		{ID: 4, Title: "X-Men", YearOfRelease: 2000, RunningTime: 104, Genres: "Action,Adventure,Sci-fi"},
		{ID: 5, Title: "Pan's Labyrinth", YearOfRelease: 2006, RunningTime: 118, Genres: "Drama, Fantasy"},
		{ID: 6, Title: "Zoolander", YearOfRelease: 2001, RunningTime: 90, Genres: "Comedy"},
	}
}

// Ratings returns the fixture ratings in insertion order. Ids are left zero
// so the store assigns them.
func Ratings() []domain.UserRating {
	return []domain.UserRating{
		{UserID: "Stuart", MovieID: 1, Rating: 5},
		{UserID: "Stuart", MovieID: 2, Rating: 3},
		{UserID: "Stuart", MovieID: 3, Rating: 2},
		{UserID: "Stuart", MovieID: 4, Rating: 3},
		{UserID: "Stuart", MovieID: 5, Rating: 5},
		{UserID: "Stuart", MovieID: 6, Rating: 2},
		{UserID: "Mary", MovieID: 1, Rating: 3},
		{UserID: "Mary", MovieID: 2, Rating: 2},
		{UserID: "Mary", MovieID: 3, Rating: 3},
		{UserID: "Mary", MovieID: 4, Rating: 4},
		{UserID: "Mary", MovieID: 5, Rating: 5},
		{UserID: "Wendy", MovieID: 2, Rating: 3},
		{UserID: "Wendy", MovieID: 3, Rating: 3},
		{UserID: "Wendy", MovieID: 4, Rating: 3},
		{UserID: "Wendy", MovieID: 5, Rating: 3},
		{UserID: "Wendy", MovieID: 6, Rating: 3},
	}
}
