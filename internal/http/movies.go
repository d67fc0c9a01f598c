package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/movies-api/internal/domain"
)

const maxRequestBody = 1 << 20 // 1 MiB

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type movieResponse struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	YearOfRelease int    `json:"yearOfRelease"`
	RunningTime   int    `json:"runningTime"`
	Genres        string `json:"genres"`
}

type movieReturnItemResponse struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	YearOfRelease int     `json:"yearOfRelease"`
	RunningTime   int     `json:"runningTime"`
	Rating        float64 `json:"rating"`
}

type ratingRequest struct {
	UserID  string `json:"userId"`
	MovieID int    `json:"movieId"`
	Rating  int    `json:"rating"`
}

func (s *Server) handleFindMovies(w http.ResponseWriter, r *http.Request) {
	filter, err := buildMovieFilter(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movies, err := s.catalog.FindMovies(r.Context(), filter)
	if err != nil {
		s.respondServiceError(w, err, "Failed to find movies")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		items = append(items, toMovieResponse(m))
	}
	s.respondJSON(w, http.StatusOK, items)
}

// buildMovieFilter reads title, genre and year from the query string. Empty
// values and year=0 count as not supplied.
func buildMovieFilter(query url.Values) (domain.MovieFilter, error) {
	filter := domain.MovieFilter{
		Title: query.Get("title"),
		Genre: query.Get("genre"),
	}
	if val := strings.TrimSpace(query.Get("year")); val != "" {
		year, err := strconv.Atoi(val)
		if err != nil {
			return filter, fmt.Errorf("invalid year value")
		}
		filter.Year = year
	}
	return filter, nil
}

func (s *Server) handleTopRated(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalog.TopRated(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "Failed to compute top rated movies")
		return
	}
	s.respondJSON(w, http.StatusOK, toReturnItemResponses(items))
}

func (s *Server) handleTopRatedForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := decodeUserIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	items, err := s.catalog.TopRatedForUser(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, err, "Failed to compute top rated movies for user")
		return
	}
	s.respondJSON(w, http.StatusOK, toReturnItemResponses(items))
}

func (s *Server) handleUpsertRating(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	err := s.catalog.UpsertRating(r.Context(), domain.UserRating{
		UserID:  req.UserID,
		MovieID: req.MovieID,
		Rating:  req.Rating,
	})
	if err != nil {
		s.respondServiceError(w, err, "Failed to store rating")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// decodeUserIDParam returns the decoded userId segment. chi routes on RawPath
// when the request has one, so only that form still needs unescaping.
func decodeUserIDParam(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "userId")
	if r.URL.RawPath == "" {
		return raw, nil
	}
	userID, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid userId parameter")
	}
	return userID, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("failed to encode response", "error", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// respondServiceError maps catalog errors onto status codes. Anything that is
// not a business rule outcome is logged and reported as 500.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, internalMessage string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		s.logger.Error(internalMessage, "error", err)
		s.respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", internalMessage)
	}
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.As(err, &maxBytesError):
		s.respondError(w, http.StatusRequestEntityTooLarge, "VALIDATION_ERROR", "Request body too large")
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unable to parse request body")
	}
}

func toMovieResponse(m domain.Movie) movieResponse {
	return movieResponse{
		ID:            m.ID,
		Title:         m.Title,
		YearOfRelease: m.YearOfRelease,
		RunningTime:   m.RunningTime,
		Genres:        m.Genres,
	}
}

func toReturnItemResponses(items []domain.MovieReturnItem) []movieReturnItemResponse {
	out := make([]movieReturnItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, movieReturnItemResponse{
			ID:            it.ID,
			Title:         it.Title,
			YearOfRelease: it.YearOfRelease,
			RunningTime:   it.RunningTime,
			Rating:        it.Rating,
		})
	}
	return out
}
