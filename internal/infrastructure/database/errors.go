package database

import "errors"

// Sentinel errors for database operations.
var (
	// ErrNoPath is returned when Open is called without a database path.
	ErrNoPath = errors.New("database: path is required")

	// ErrInvalidMigration is returned when a migration pair is incomplete.
	ErrInvalidMigration = errors.New("database: invalid migration")
)
