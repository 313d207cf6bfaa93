// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gelo7212/express-ts-backend-generator/internal/ports/secondary"
)

// GenerationRunRepository implements secondary.GenerationRunRepository with SQLite.
type GenerationRunRepository struct {
	db *sql.DB
}

// NewGenerationRunRepository creates a new SQLite generation run repository.
func NewGenerationRunRepository(db *sql.DB) *GenerationRunRepository {
	return &GenerationRunRepository{db: db}
}

const runColumns = "id, command, generator, name, project_path, success, files_written, files_skipped, error_count, errors, created_at"

// Create persists a new run.
func (r *GenerationRunRepository) Create(ctx context.Context, run *secondary.GenerationRunRecord) error {
	var name, errs sql.NullString
	if run.Name != "" {
		name = sql.NullString{String: run.Name, Valid: true}
	}
	if run.Errors != "" {
		errs = sql.NullString{String: run.Errors, Valid: true}
	}

	createdAt := time.Now().UTC()
	if run.CreatedAt != "" {
		parsed, err := time.Parse(time.RFC3339, run.CreatedAt)
		if err != nil {
			return fmt.Errorf("invalid created_at %q: %w", run.CreatedAt, err)
		}
		createdAt = parsed
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO generation_runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Command, run.Generator, name, run.ProjectPath, run.Success,
		run.FilesWritten, run.FilesSkipped, run.ErrorCount, errs, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create generation run: %w", err)
	}

	return nil
}

// GetByID retrieves a run by its ID.
func (r *GenerationRunRepository) GetByID(ctx context.Context, id string) (*secondary.GenerationRunRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM generation_runs WHERE id = ?",
		id,
	)

	record, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("generation run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get generation run: %w", err)
	}

	return record, nil
}

// List retrieves runs matching the given filters, newest first.
func (r *GenerationRunRepository) List(ctx context.Context, filters secondary.GenerationRunFilters) ([]*secondary.GenerationRunRecord, error) {
	var (
		where []string
		args  []any
	)
	if filters.Generator != "" {
		where = append(where, "generator = ?")
		args = append(args, filters.Generator)
	}
	if filters.ProjectPath != "" {
		where = append(where, "project_path = ?")
		args = append(args, filters.ProjectPath)
	}
	if filters.FailedOnly {
		where = append(where, "success = 0")
	}

	query := "SELECT " + runColumns + " FROM generation_runs"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}
	defer rows.Close()

	var runs []*secondary.GenerationRunRecord
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation run: %w", err)
		}
		runs = append(runs, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list generation runs: %w", err)
	}

	return runs, nil
}

// DeleteAll removes every run.
func (r *GenerationRunRepository) DeleteAll(ctx context.Context) (int, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM generation_runs")
	if err != nil {
		return 0, fmt.Errorf("failed to clear generation runs: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*secondary.GenerationRunRecord, error) {
	var (
		name      sql.NullString
		errs      sql.NullString
		createdAt time.Time
	)

	record := &secondary.GenerationRunRecord{}
	err := s.Scan(&record.ID, &record.Command, &record.Generator, &name, &record.ProjectPath,
		&record.Success, &record.FilesWritten, &record.FilesSkipped, &record.ErrorCount, &errs, &createdAt)
	if err != nil {
		return nil, err
	}

	record.Name = name.String
	record.Errors = errs.String
	record.CreatedAt = createdAt.UTC().Format(time.RFC3339)

	return record, nil
}

// Ensure GenerationRunRepository implements the interface
var _ secondary.GenerationRunRepository = (*GenerationRunRepository)(nil)
