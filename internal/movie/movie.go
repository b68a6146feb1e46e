package movie

import (
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Movie is a single catalog entry.
type Movie struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Director string   `json:"director"`
	Duration int      `json:"duration"`
	Poster   string   `json:"poster"`
	Genre    []string `json:"genre"`
	Rate     float64  `json:"rate"`
}

// Genres is the closed set of accepted genre labels.
var Genres = []string{
	"Action", "Crime", "Comedy", "Drama", "Horror", "Romance",
	"Sci-Fi", "Documentary", "Thriller", "Animation", "Adventure",
}

// ErrMovieNotFound is returned when a catalog lookup misses.
var ErrMovieNotFound = errors.New("movie not found")

// earliestYear is the oldest release year the catalog accepts.
const earliestYear = 1850

// maxRate is the upper bound of the rating scale.
const maxRate = 10.0

// CreateInput is the payload for adding a movie to the catalog.
type CreateInput struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Director string   `json:"director"`
	Duration int      `json:"duration"`
	Poster   string   `json:"poster"`
	Genre    []string `json:"genre"`
	Rate     *float64 `json:"rate"`
}

// Validate checks the create payload shape. Rate is optional and defaults
// to zero when omitted.
func (in CreateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Year, validation.Required, validation.Min(earliestYear), validation.Max(time.Now().Year())),
		validation.Field(&in.Director, validation.Required),
		validation.Field(&in.Duration, validation.Required, validation.Min(1)),
		validation.Field(&in.Poster, validation.Required, is.URL),
		validation.Field(&in.Genre, validation.Required, validation.By(validGenres)),
		validation.Field(&in.Rate, validation.By(validRate)),
	)
}

// UpdateInput is the payload for partially updating a movie.
// Nil fields are left untouched.
type UpdateInput struct {
	Title    *string   `json:"title"`
	Year     *int      `json:"year"`
	Director *string   `json:"director"`
	Duration *int      `json:"duration"`
	Poster   *string   `json:"poster"`
	Genre    *[]string `json:"genre"`
	Rate     *float64  `json:"rate"`
}

// Validate checks only the fields the update provides.
func (in UpdateInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.NilOrNotEmpty),
		validation.Field(&in.Year, validation.Min(earliestYear), validation.Max(time.Now().Year())),
		validation.Field(&in.Director, validation.NilOrNotEmpty),
		validation.Field(&in.Duration, validation.Min(1)),
		validation.Field(&in.Poster, is.URL),
		validation.Field(&in.Genre, validation.By(validGenresPtr)),
		validation.Field(&in.Rate, validation.By(validRate)),
	)
}

// validGenres checks a genre list against the closed genre set.
func validGenres(value interface{}) error {
	genres, ok := value.([]string)
	if !ok || len(genres) == 0 {
		return errors.New("at least one genre is required")
	}
	for _, g := range genres {
		if !isKnownGenre(g) {
			return fmt.Errorf("unknown genre: %s", g)
		}
	}
	return nil
}

// validGenresPtr applies validGenres when a genre list is supplied.
func validGenresPtr(value interface{}) error {
	genres, ok := value.(*[]string)
	if !ok || genres == nil {
		return nil
	}
	return validGenres(*genres)
}

// validRate bounds an optional rating to the 0-10 scale.
func validRate(value interface{}) error {
	rate, ok := value.(*float64)
	if !ok || rate == nil {
		return nil
	}
	if *rate < 0 || *rate > maxRate {
		return fmt.Errorf("rate must be between 0 and %v", maxRate)
	}
	return nil
}

func isKnownGenre(g string) bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}
