package automation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ExecutionRepository persists automation execution records.
type ExecutionRepository interface {
	CreateExecution(ctx context.Context, exec *Execution) error
	UpdateExecution(ctx context.Context, exec *Execution) error
	GetExecution(ctx context.Context, id string) (*Execution, error)
	ListExecutions(ctx context.Context, automationID string, limit int) ([]Execution, error)
}

// timestampLayout is fixed-width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// defaultListLimit caps ListExecutions when limit is not positive.
const defaultListLimit = 50

const executionColumns = `id, automation_id, trigger_id, trigger_value, status,
			actions_total, actions_completed, error, started_at, completed_at`

// SQLiteRepository implements ExecutionRepository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateExecution inserts a new execution record.
func (r *SQLiteRepository) CreateExecution(ctx context.Context, exec *Execution) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO automation_executions (`+executionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exec.ID,
		exec.AutomationID,
		exec.TriggerID,
		exec.TriggerValue,
		string(exec.Status),
		exec.ActionsTotal,
		exec.ActionsCompleted,
		nullableString(exec.Error),
		exec.StartedAt.UTC().Format(timestampLayout),
		nullableTime(exec.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting execution: %w", err)
	}
	return nil
}

// UpdateExecution stores the outcome of an execution.
func (r *SQLiteRepository) UpdateExecution(ctx context.Context, exec *Execution) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE automation_executions
		SET status = ?, actions_completed = ?, error = ?, completed_at = ?
		WHERE id = ?`,
		string(exec.Status),
		exec.ActionsCompleted,
		nullableString(exec.Error),
		nullableTime(exec.CompletedAt),
		exec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating execution: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrExecutionNotFound
	}
	return nil
}

// GetExecution retrieves an execution by ID.
func (r *SQLiteRepository) GetExecution(ctx context.Context, id string) (*Execution, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+executionColumns+` FROM automation_executions WHERE id = ?`, id)
	exec, err := scanExecution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrExecutionNotFound
		}
		return nil, fmt.Errorf("querying execution: %w", err)
	}
	return exec, nil
}

// ListExecutions returns the most recent executions of an automation,
// newest first. An empty automationID lists every automation.
func (r *SQLiteRepository) ListExecutions(ctx context.Context, automationID string, limit int) ([]Execution, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + executionColumns + ` FROM automation_executions`
	args := []any{}
	if automationID != "" {
		query += ` WHERE automation_id = ?`
		args = append(args, automationID)
	}
	query += ` ORDER BY started_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying executions: %w", err)
	}
	defer rows.Close()

	var out []Execution
	for rows.Next() {
		exec, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning execution: %w", err)
		}
		out = append(out, *exec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating executions: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExecution(scanner rowScanner) (*Execution, error) {
	var e Execution
	var status, startedAt string
	var errMsg, completedAt sql.NullString

	err := scanner.Scan(
		&e.ID,
		&e.AutomationID,
		&e.TriggerID,
		&e.TriggerValue,
		&status,
		&e.ActionsTotal,
		&e.ActionsCompleted,
		&errMsg,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Status = ExecutionStatus(status)
	e.Error = errMsg.String
	if t, parseErr := time.Parse(time.RFC3339Nano, startedAt); parseErr == nil {
		e.StartedAt = t
	}
	if completedAt.Valid {
		if t, parseErr := time.Parse(time.RFC3339Nano, completedAt.String); parseErr == nil {
			e.CompletedAt = &t
		}
	}
	return &e, nil
}

// ─── SQL Helpers ────────────────────────────────────────────────────────────

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(timestampLayout), Valid: true}
}
