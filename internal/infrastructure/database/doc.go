// Package database provides SQLite connectivity for Filmreel Core.
//
// It opens the database file with WAL mode and a busy timeout, restricts
// file permissions to the owner, and applies embedded schema migrations:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration files live in the top-level migrations/ directory, named
// YYYYMMDD_HHMMSS_description.up.sql with an optional matching .down.sql.
// Each migration runs in its own transaction and is recorded in the
// schema_migrations table, so Migrate is safe to call on every startup.
package database
