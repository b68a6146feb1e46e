// Filmreel Core - Movie Catalog and Account Service
//
// This is the main entry point for the Filmreel Core application: an HTTP
// backend serving a movie catalog alongside user registration, login,
// token refresh, and profile management.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/filmreel/filmreel-core/migrations"

	"github.com/filmreel/filmreel-core/internal/api"
	"github.com/filmreel/filmreel-core/internal/auth"
	"github.com/filmreel/filmreel-core/internal/infrastructure/config"
	"github.com/filmreel/filmreel-core/internal/infrastructure/database"
	"github.com/filmreel/filmreel-core/internal/infrastructure/logging"
	"github.com/filmreel/filmreel-core/internal/movie"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use the default logger until config is loaded.
	log := logging.Default()
	log.Info("starting Filmreel Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded",
		"path", configPath,
		"log_level", cfg.Logging.Level,
	)

	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	catalog, err := movie.NewSeededCatalog()
	if err != nil {
		return fmt.Errorf("loading movie catalog: %w", err)
	}
	log.Info("movie catalog loaded", "movies", catalog.Count())

	server, err := api.New(api.Deps{
		Config:   cfg.Server,
		Security: cfg.Security,
		Logger:   log,
		Users:    auth.NewUserRepository(db.DB),
		Tokens:   auth.NewTokenStore(db.DB),
		Catalog:  catalog,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("API server started",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	<-ctx.Done()
	log.Info("shutdown signal received")

	return nil
}

// openDatabase connects to SQLite and brings the schema up to date.
func openDatabase(ctx context.Context, cfg *config.Config, log *logging.Logger) (*database.DB, error) {
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info("database ready", "path", cfg.Database.Path)
	return db, nil
}

// getConfigPath returns the configuration file path from the environment
// or the default.
func getConfigPath() string {
	if path := os.Getenv("FILMREEL_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
