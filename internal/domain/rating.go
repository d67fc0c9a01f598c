package domain

const (
	MinRating = 1
	MaxRating = 5
)

// UserRating is a single user's rating for a movie.
type UserRating struct {
	ID      int
	UserID  string
	MovieID int
	Rating  int
}

// ValidRating reports whether value lies in the accepted rating range.
func ValidRating(value int) bool {
	return value >= MinRating && value <= MaxRating
}
