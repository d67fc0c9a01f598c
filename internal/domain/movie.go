package domain

// Movie represents a catalog entry. Movies are read-only once seeded.
type Movie struct {
	ID            int
	Title         string
	YearOfRelease int
	RunningTime   int
	// Genres is stored as a single comma-separated string.
	Genres string
}

// MovieFilter selects movies by any of its non-zero fields.
type MovieFilter struct {
	Title string
	Year  int
	Genre string
}

// IsEmpty reports whether no filter criterion was supplied.
func (f MovieFilter) IsEmpty() bool {
	return f.Title == "" && f.Genre == "" && f.Year == 0
}

// MovieReturnItem is a movie projected together with a rating value.
type MovieReturnItem struct {
	ID            int
	Title         string
	YearOfRelease int
	RunningTime   int
	Rating        float64
}
