package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filmreel/filmreel-core/internal/movie"
)

// handleListMovies returns the catalog, optionally filtered by the
// genre query parameter (case-insensitive).
func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	genre := r.URL.Query().Get("genre")
	writeJSON(w, http.StatusOK, s.catalog.List(genre))
}

// handleGetMovie returns a single movie by id.
func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := s.catalog.Get(id)
	if err != nil {
		writeNotFound(w, "movie not found")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// handleCreateMovie adds a movie to the catalog.
func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var in movie.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := in.Validate(); err != nil {
		writeUnprocessable(w, err)
		return
	}

	m := s.catalog.Add(in)
	s.logger.Info("movie created", "movie_id", m.ID, "title", m.Title)
	writeJSON(w, http.StatusCreated, m)
}

// handleUpdateMovie applies a partial update to a movie.
func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	var in movie.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := in.Validate(); err != nil {
		writeUnprocessable(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	m, err := s.catalog.Update(id, in)
	if err != nil {
		if errors.Is(err, movie.ErrMovieNotFound) {
			writeNotFound(w, "movie not found")
			return
		}
		s.logger.Error("update movie failed", "error", err, "movie_id", id)
		writeInternalError(w, "failed to update movie")
		return
	}

	writeJSON(w, http.StatusOK, m)
}

// handleDeleteMovie removes a movie from the catalog.
func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalog.Delete(id); err != nil {
		writeNotFound(w, "movie not found")
		return
	}

	s.logger.Info("movie deleted", "movie_id", id)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Movie deleted",
	})
}
