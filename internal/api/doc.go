// Package api provides the HTTP REST API server for Filmreel Core.
//
// It exposes the movie catalog and the user account surface (register,
// login, token refresh, logout, profile) to web and mobile clients.
//
// The server follows the same lifecycle pattern as other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Session handling is deliberately split in two: a fail-open middleware
// decodes the bearer token (if any) into request context, and each handler
// decides for itself whether a session is required. The middleware never
// rejects a request.
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines.
package api
