package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/filmreel/filmreel-core/internal/infrastructure/config"
)

// serviceName is attached to every log record.
const serviceName = "filmreel"

// Logger wraps slog.Logger with the service's default fields and
// level-based filtering.
//
// Thread Safety: all methods are safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New creates a Logger from the logging configuration. Format selects JSON
// (production) or text (development) output; every record carries the
// service name and version as default fields.
func New(cfg config.LoggingConfig, version string) *Logger {
	handler := newHandler(destination(cfg.Output), cfg)
	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", serviceName),
		slog.String("version", version),
	})
	return &Logger{Logger: slog.New(handler)}
}

// destination maps the configured output name to a writer.
func destination(output string) io.Writer {
	if strings.ToLower(output) == "stderr" {
		return os.Stderr
	}
	return os.Stdout
}

// newHandler builds the slog handler for the configured format and level.
func newHandler(w io.Writer, cfg config.LoggingConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if strings.ToLower(cfg.Format) == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// parseLevel converts a level name to slog.Level.
// Unrecognised names fall back to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child Logger carrying additional default attributes:
//
//	apiLogger := logger.With("component", "api")
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default creates a JSON/info/stdout logger for use during early startup,
// before the configuration file has been read.
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}
