package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/filmreel/filmreel-core/internal/auth"
	"github.com/filmreel/filmreel-core/internal/infrastructure/config"
	"github.com/filmreel/filmreel-core/internal/infrastructure/logging"
	"github.com/filmreel/filmreel-core/internal/movie"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.ServerConfig
	Security config.SecurityConfig
	Logger   *logging.Logger
	Users    auth.UserRepository
	Tokens   auth.TokenStore
	Catalog  *movie.Catalog
	Version  string
}

// validate reports the first missing dependency, if any.
func (d Deps) validate() error {
	checks := []struct {
		missing bool
		what    string
	}{
		{d.Logger == nil, "logger"},
		{d.Users == nil, "user repository"},
		{d.Tokens == nil, "token store"},
		{d.Catalog == nil, "movie catalog"},
		{d.Security.JWT.Secret == "", "JWT secret"},
	}
	for _, c := range checks {
		if c.missing {
			return fmt.Errorf("%s is required", c.what)
		}
	}
	return nil
}

// Server is the HTTP API server for Filmreel Core.
//
// It manages the HTTP listener, routes, and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg     config.ServerConfig
	secCfg  config.SecurityConfig
	logger  *logging.Logger
	users   auth.UserRepository
	tokens  auth.TokenStore
	catalog *movie.Catalog
	version string
	server  *http.Server
}

// New creates a new API server with the given dependencies. The server does
// not listen until Start() is called.
func New(deps Deps) (*Server, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	return &Server{
		cfg:     deps.Config,
		secCfg:  deps.Security,
		logger:  deps.Logger,
		users:   deps.Users,
		tokens:  deps.Tokens,
		catalog: deps.Catalog,
		version: deps.Version,
	}, nil
}

// Start builds the router and launches the HTTP listener in a background
// goroutine. It returns immediately; listener errors other than a clean
// shutdown are logged.
func (s *Server) Start(_ context.Context) error {
	read := time.Duration(s.cfg.Timeouts.Read) * time.Second

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       read,
		ReadHeaderTimeout: read,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the API server, waiting up to
// gracefulShutdownTimeout for in-flight requests to complete.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
