package textinput

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-textinput/internal/entity"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200

	historyTimestampLayout = "2006-01-02T15:04:05.000000Z07:00"
)

// HistoryEntry is one recorded value.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	EntityID  string    `json:"entity_id"`
	Value     string    `json:"value"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryRepository stores and retrieves text input value history.
//
// Implementations must be thread-safe and use UTC timestamps.
type HistoryRepository interface {
	// Record stores one value change.
	Record(ctx context.Context, entityID, value, source string) error

	// History returns recent values for the entity, newest first.
	// limit <= 0 selects the default (50); values above 200 are clamped.
	History(ctx context.Context, entityID string, limit int) ([]HistoryEntry, error)

	// Latest returns the most recent value, or false if none exists.
	Latest(ctx context.Context, entityID string) (HistoryEntry, bool, error)
}

// SQLiteHistory implements HistoryRepository on the
// text_input_state_history table.
type SQLiteHistory struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteHistory creates a history repository on db.
//
// Parameters:
//   - db: Open SQLite connection with migrations applied
//
// Returns:
//   - *SQLiteHistory: Repository instance ready for use
func NewSQLiteHistory(db *sql.DB) *SQLiteHistory {
	return &SQLiteHistory{db: db, now: time.Now}
}

// Record inserts a history row. An empty source is stored as internal.
func (r *SQLiteHistory) Record(ctx context.Context, entityID, value, source string) error {
	if entityID == "" {
		return ErrInvalidEntityID
	}
	if source == "" {
		source = entity.SourceInternal
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO text_input_state_history (entity_id, value, source, created_at)
		 VALUES (?, ?, ?, ?)`,
		entityID,
		value,
		source,
		r.now().UTC().Format(historyTimestampLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting text input history: %w", err)
	}
	return nil
}

// History returns recent entries for entityID ordered newest first.
func (r *SQLiteHistory) History(ctx context.Context, entityID string, limit int) ([]HistoryEntry, error) {
	if entityID == "" {
		return nil, ErrInvalidEntityID
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, entity_id, value, source, created_at
		 FROM text_input_state_history
		 WHERE entity_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		entityID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying text input history: %w", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntry, 0, limit)
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating text input history: %w", err)
	}
	return entries, nil
}

// Latest returns the newest entry for entityID.
func (r *SQLiteHistory) Latest(ctx context.Context, entityID string) (HistoryEntry, bool, error) {
	entries, err := r.History(ctx, entityID, 1)
	if err != nil {
		return HistoryEntry{}, false, err
	}
	if len(entries) == 0 {
		return HistoryEntry{}, false, nil
	}
	return entries[0], true, nil
}

// Prune deletes entries older than olderThan.
//
// Returns:
//   - int64: Number of rows deleted
//   - error: nil on success, otherwise the underlying database error
func (r *SQLiteHistory) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, fmt.Errorf("olderThan must be positive")
	}

	cutoff := r.now().UTC().Add(-olderThan).Format(historyTimestampLayout)
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM text_input_state_history WHERE created_at < ?",
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting text input history: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

func scanHistory(rows *sql.Rows) (HistoryEntry, error) {
	var entry HistoryEntry
	var createdAt string
	if err := rows.Scan(&entry.ID, &entry.EntityID, &entry.Value, &entry.Source, &createdAt); err != nil {
		return HistoryEntry{}, fmt.Errorf("scanning text input history: %w", err)
	}
	ts, err := time.Parse(historyTimestampLayout, createdAt)
	if err != nil {
		return HistoryEntry{}, fmt.Errorf("parsing created_at: %w", err)
	}
	entry.CreatedAt = ts
	return entry, nil
}
