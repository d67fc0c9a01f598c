package httpserver

import (
	"net/url"
	"testing"
)

func FuzzBuildMovieFilter(f *testing.F) {
	seeds := []string{
		"title=Shawshank&year=1994",
		"genre=Drama",
		"year=abc",
		"year=-1",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		filter, err := buildMovieFilter(values)
		if err != nil {
			return
		}
		if filter.Title != values.Get("title") || filter.Genre != values.Get("genre") {
			t.Fatalf("filter %+v does not mirror query %q", filter, raw)
		}
	})
}
