// Package database provides SQLite connectivity for the text input node.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Forward-only schema migrations loaded from an fs.FS
//   - Connection lifecycle and health checks
//
// The database holds the text input state history and automation
// execution records. Neither is required for entity setup; the node runs
// without history when the database cannot be opened.
//
// Usage:
//
//	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path, WALMode: true})
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    return err
//	}
package database
