// Package movie provides the in-memory movie catalog for Filmreel Core.
//
// The catalog is a plain slice guarded by a read-write mutex: there is no
// persistence, and a restart resets it to the embedded seed data. This
// mirrors the catalog's role as demo content next to the user system,
// which is the part backed by the database.
package movie
