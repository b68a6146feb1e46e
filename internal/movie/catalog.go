package movie

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

//go:embed movies.json
var seedFS embed.FS

// Catalog is the in-memory movie collection.
//
// Thread Safety: all methods are safe for concurrent use. Reads return
// copies so callers can never mutate the catalog behind the lock.
type Catalog struct {
	mu     sync.RWMutex
	movies []Movie
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// NewSeededCatalog creates a catalog pre-populated from the embedded seed file.
func NewSeededCatalog() (*Catalog, error) {
	data, err := seedFS.ReadFile("movies.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded seed: %w", err)
	}

	var movies []Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		return nil, fmt.Errorf("parsing embedded seed: %w", err)
	}

	return &Catalog{movies: movies}, nil
}

// List returns all movies, optionally filtered by genre.
// The genre match is case-insensitive against each movie's genre list.
func (c *Catalog) List(genre string) []Movie {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if genre == "" {
		out := make([]Movie, len(c.movies))
		copy(out, c.movies)
		return out
	}

	out := []Movie{}
	for _, m := range c.movies {
		for _, g := range m.Genre {
			if strings.EqualFold(g, genre) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// Get returns the movie with the given id.
func (c *Catalog) Get(id string) (Movie, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return Movie{}, ErrMovieNotFound
}

// Add creates a new movie from the input and returns it with a generated id.
func (c *Catalog) Add(in CreateInput) Movie {
	m := Movie{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Year:     in.Year,
		Director: in.Director,
		Duration: in.Duration,
		Poster:   in.Poster,
		Genre:    in.Genre,
	}
	if in.Rate != nil {
		m.Rate = *in.Rate
	}

	c.mu.Lock()
	c.movies = append(c.movies, m)
	c.mu.Unlock()

	return m
}

// Update applies the provided fields to the movie with the given id and
// returns the updated movie. Omitted fields are untouched.
func (c *Catalog) Update(id string, in UpdateInput) (Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.movies {
		if c.movies[i].ID != id {
			continue
		}

		m := &c.movies[i]
		if in.Title != nil {
			m.Title = *in.Title
		}
		if in.Year != nil {
			m.Year = *in.Year
		}
		if in.Director != nil {
			m.Director = *in.Director
		}
		if in.Duration != nil {
			m.Duration = *in.Duration
		}
		if in.Poster != nil {
			m.Poster = *in.Poster
		}
		if in.Genre != nil {
			m.Genre = *in.Genre
		}
		if in.Rate != nil {
			m.Rate = *in.Rate
		}
		return *m, nil
	}

	return Movie{}, ErrMovieNotFound
}

// Delete removes the movie with the given id.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.movies {
		if c.movies[i].ID == id {
			c.movies = append(c.movies[:i], c.movies[i+1:]...)
			return nil
		}
	}
	return ErrMovieNotFound
}

// Count returns the number of movies in the catalog.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.movies)
}
