package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// corsMaxAge is how long browsers may cache a preflight response, in seconds.
const corsMaxAge = 86400

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: originsOrDefault(s.cfg.CORS.AllowedOrigins),
		AllowedMethods: methodsOrDefault(s.cfg.CORS.AllowedMethods),
		AllowedHeaders: headersOrDefault(s.cfg.CORS.AllowedHeaders),
		MaxAge:         corsMaxAge,
	}))
	r.Use(s.bodySizeLimitMiddleware)
	r.Use(s.sessionMiddleware)

	r.Get("/", s.handleWelcome)
	r.Get("/health", s.handleHealth)

	// Movie catalog
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", s.handleListMovies)
		r.Post("/", s.handleCreateMovie)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetMovie)
			r.Patch("/", s.handleUpdateMovie)
			r.Delete("/", s.handleDeleteMovie)
		})
	})

	// User accounts. The session middleware never blocks; each handler
	// enforces its own auth requirement.
	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/refresh-token", s.handleRefreshToken)
		r.Post("/logout", s.handleLogout)
		r.Get("/get-self-info", s.handleGetSelfInfo)
		r.Post("/get-self-info", s.handleGetSelfInfo)
		r.Post("/update", s.handleUpdateProfile)
		r.Patch("/update", s.handleUpdateProfile)
		r.Post("/check-username-availability", s.handleCheckUsername)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w, "route not found")
	})

	return r
}

// handleWelcome serves the landing page.
func (s *Server) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // Best-effort write to response
	w.Write([]byte("<h1>Welcome to Filmreel</h1>"))
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

func originsOrDefault(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func methodsOrDefault(methods []string) []string {
	if len(methods) == 0 {
		return []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	return methods
}

func headersOrDefault(headers []string) []string {
	if len(headers) == 0 {
		return []string{"Authorization", "Content-Type", "X-Request-ID", "X-Refresh-Token"}
	}
	return headers
}
