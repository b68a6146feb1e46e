// Package logging provides structured logging for Filmreel Core.
//
// It wraps log/slog so every component logs the same way: JSON records in
// production, text in development, with the service name and version stamped
// on each entry and levels filtered per the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Typical use:
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("starting service", "port", 8080)
//	apiLogger := logger.With("component", "api")
//
// Never log passwords, password hashes, or tokens. Credential material must
// not appear in log output at any level.
package logging
