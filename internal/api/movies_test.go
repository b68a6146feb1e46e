package api

import (
	"net/http"
	"testing"

	"github.com/filmreel/filmreel-core/internal/movie"
)

func TestListMovies(t *testing.T) {
	srv, handler := testServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/movies", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var movies []movie.Movie
	decodeBody(t, rec, &movies)
	if len(movies) != srv.catalog.Count() {
		t.Errorf("got %d movies, want %d", len(movies), srv.catalog.Count())
	}
}

func TestListMoviesGenreFilter(t *testing.T) {
	_, handler := testServer(t)

	rec := doJSON(t, handler, http.MethodGet, "/movies?genre=sci-fi", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var movies []movie.Movie
	decodeBody(t, rec, &movies)
	if len(movies) == 0 {
		t.Fatal("expected seeded Sci-Fi movies")
	}
	for _, m := range movies {
		found := false
		for _, g := range m.Genre {
			if g == "Sci-Fi" {
				found = true
			}
		}
		if !found {
			t.Errorf("movie %q returned without Sci-Fi genre", m.Title)
		}
	}
}

func TestGetMovie(t *testing.T) {
	srv, handler := testServer(t)
	want := srv.catalog.List("")[0]

	rec := doJSON(t, handler, http.MethodGet, "/movies/"+want.ID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got movie.Movie
	decodeBody(t, rec, &got)
	if got.Title != want.Title {
		t.Errorf("title = %q, want %q", got.Title, want.Title)
	}

	rec = doJSON(t, handler, http.MethodGet, "/movies/no-such-id", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id = %d, want 404", rec.Code)
	}
}

func TestCreateMovie(t *testing.T) {
	srv, handler := testServer(t)

	rate := 7.9
	rec := doJSON(t, handler, http.MethodPost, "/movies", movie.CreateInput{
		Title:    "Arrival",
		Year:     2016,
		Director: "Denis Villeneuve",
		Duration: 116,
		Poster:   "https://example.com/arrival.jpg",
		Genre:    []string{"Sci-Fi", "Drama"},
		Rate:     &rate,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var created movie.Movie
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Error("created movie has no id")
	}

	if _, err := srv.catalog.Get(created.ID); err != nil {
		t.Errorf("created movie not in catalog: %v", err)
	}
}

func TestCreateMovieShapeViolation(t *testing.T) {
	_, handler := testServer(t)

	rec := doJSON(t, handler, http.MethodPost, "/movies", movie.CreateInput{
		Title: "No Other Fields",
	}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestUpdateMovie(t *testing.T) {
	srv, handler := testServer(t)
	target := srv.catalog.List("")[0]

	rate := 9.5
	rec := doJSON(t, handler, http.MethodPatch, "/movies/"+target.ID, movie.UpdateInput{
		Rate: &rate,
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var updated movie.Movie
	decodeBody(t, rec, &updated)
	if updated.Rate != rate {
		t.Errorf("rate = %v, want %v", updated.Rate, rate)
	}
	if updated.Title != target.Title {
		t.Errorf("title changed on partial update: %q", updated.Title)
	}
}

func TestUpdateMovieErrors(t *testing.T) {
	srv, handler := testServer(t)
	target := srv.catalog.List("")[0]

	badYear := 1700
	rec := doJSON(t, handler, http.MethodPatch, "/movies/"+target.ID, movie.UpdateInput{
		Year: &badYear,
	}, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad shape = %d, want 422", rec.Code)
	}

	rate := 5.0
	rec = doJSON(t, handler, http.MethodPatch, "/movies/no-such-id", movie.UpdateInput{
		Rate: &rate,
	}, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id = %d, want 404", rec.Code)
	}
}

func TestDeleteMovie(t *testing.T) {
	srv, handler := testServer(t)
	target := srv.catalog.List("")[0]

	rec := doJSON(t, handler, http.MethodDelete, "/movies/"+target.ID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodGet, "/movies/"+target.ID, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted movie still served: %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/movies/"+target.ID, nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double delete = %d, want 404", rec.Code)
	}
}
