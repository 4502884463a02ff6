package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/custodia-labs/lcsynth/internal/core/domain"
	"github.com/custodia-labs/lcsynth/internal/core/ports/driven"
)

// runLedger implements driven.RunLedger.
type runLedger struct {
	store *Store
}

var _ driven.RunLedger = (*runLedger)(nil)

const runColumns = `id, config_path, output_dir, filters, objects, tmin, snr_model,
	status, started_at, finished_at, error`

// StartRun records a new run.
func (l *runLedger) StartRun(ctx context.Context, run domain.Run) error {
	filters, err := json.Marshal(run.Filters)
	if err != nil {
		return fmt.Errorf("marshalling filters: %w", err)
	}
	_, err = l.store.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.ConfigPath, run.OutputDir, string(filters), run.Objects, run.TMin,
		string(run.SNRModel), string(run.Status), run.StartedAt.UTC(), nullTime(run.FinishedAt), run.Error)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// RecordFailure stores one object failure.
func (l *runLedger) RecordFailure(ctx context.Context, runID string, f domain.ObjectFailure) error {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO object_failures (run_id, object_index, stage, error)
		VALUES (?, ?, ?, ?)
	`, runID, f.Index, f.Stage, msg)
	if err != nil {
		return fmt.Errorf("saving failure: %w", err)
	}
	return nil
}

// FinishRun updates the mutable fields of a run.
func (l *runLedger) FinishRun(ctx context.Context, run domain.Run) error {
	res, err := l.store.db.ExecContext(ctx, `
		UPDATE runs SET objects = ?, tmin = ?, status = ?, finished_at = ?, error = ?
		WHERE id = ?
	`, run.Objects, run.TMin, string(run.Status), nullTime(run.FinishedAt), run.Error, run.ID)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetRun retrieves a run by ID.
func (l *runLedger) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := l.store.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns the most recent runs first.
func (l *runLedger) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Failures returns the failures of a run in object order.
func (l *runLedger) Failures(ctx context.Context, runID string) ([]domain.ObjectFailure, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT object_index, stage, error FROM object_failures
		WHERE run_id = ? ORDER BY object_index, id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying failures: %w", err)
	}
	defer rows.Close()

	var failures []domain.ObjectFailure //nolint:prealloc // size unknown from query
	for rows.Next() {
		var f domain.ObjectFailure
		var msg string
		if err := rows.Scan(&f.Index, &f.Stage, &msg); err != nil {
			return nil, fmt.Errorf("scanning failure: %w", err)
		}
		f.Err = errors.New(msg)
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating failures: %w", err)
	}
	return failures, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.Run, error) {
	var run domain.Run
	var filters, snrModel, status string
	var startedAt, finishedAt sql.NullTime
	err := row.Scan(&run.ID, &run.ConfigPath, &run.OutputDir, &filters, &run.Objects, &run.TMin,
		&snrModel, &status, &startedAt, &finishedAt, &run.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if err := json.Unmarshal([]byte(filters), &run.Filters); err != nil {
		return nil, fmt.Errorf("unmarshaling filters: %w", err)
	}
	run.SNRModel = domain.SNRModel(snrModel)
	run.Status = domain.RunStatus(status)
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return &run, nil
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
