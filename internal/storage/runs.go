package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/model"
)

// StartRun inserts a run in the running state.
func (s *SQLiteStorage) StartRun(ctx context.Context, run model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(&run); err != nil {
		return err
	}

	status := run.Status
	if status == "" {
		status = model.RunStatusRunning
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, source_dir, output_dir, mode, log_path, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.SourceDir, run.OutputDir, run.Mode, run.LogPath, string(status))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// RecordResult stores one image outcome and bumps the run counters in the
// same transaction.
func (s *SQLiteStorage) RecordResult(ctx context.Context, runID string, result model.ClassificationResult) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(runID, "runID"); err != nil {
		return err
	}
	if err := validateResult(&result); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO results (run_id, image_name, source_path, category, answer, reasoning, destination, outcome, error, classified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, result.ImageName, result.SourcePath, nullable(result.Category), result.Answer,
		nullable(result.Reasoning), result.Destination, string(result.Outcome), result.Error,
		result.ClassifiedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}

	counter := map[model.Outcome]string{
		model.OutcomeMatched:   "matched",
		model.OutcomeUnmatched: "unmatched",
		model.OutcomeErrored:   "errored",
	}[result.Outcome]

	res, err := tx.ExecContext(ctx,
		fmt.Sprintf(`UPDATE runs SET processed = processed + 1, %[1]s = %[1]s + 1 WHERE id = ?`, counter),
		runID)
	if err != nil {
		return fmt.Errorf("failed to update run counters: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s: %w", runID, common.ErrNotFound)
	}

	return tx.Commit()
}

// FinishRun stores the final status and totals of a run.
func (s *SQLiteStorage) FinishRun(ctx context.Context, run model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(&run); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, status = ?, processed = ?, matched = ?, unmatched = ?, errored = ?, skipped = ?, log_path = ?
		WHERE id = ?`,
		run.FinishedAt.UTC(), string(run.Status), run.Processed, run.Matched, run.Unmatched,
		run.Errored, run.Skipped, run.LogPath, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s: %w", run.ID, common.ErrNotFound)
	}
	return nil
}

const runColumns = `id, started_at, finished_at, source_dir, output_dir, mode, log_path, status,
	processed, matched, unmatched, errored, skipped`

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return model.Run{}, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Run{}, fmt.Errorf("run %s: %w", id, common.ErrNotFound)
	}
	return run, err
}

// GetResults returns the results of a run in processing order.
func (s *SQLiteStorage) GetResults(ctx context.Context, runID string) ([]model.ClassificationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT image_name, source_path, category, answer, reasoning, destination, outcome, error, classified_at
		FROM results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.ClassificationResult
	for rows.Next() {
		var (
			r                              model.ClassificationResult
			category, reasoning            sql.NullString
			answer, destination, errString sql.NullString
			outcome                        string
		)
		if err := rows.Scan(&r.ImageName, &r.SourcePath, &category, &answer, &reasoning,
			&destination, &outcome, &errString, &r.ClassifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Category = fromNullable(category)
		r.Reasoning = fromNullable(reasoning)
		r.Answer = answer.String
		r.Destination = destination.String
		r.Error = errString.String
		r.Outcome = model.Outcome(outcome)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}
	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (model.Run, error) {
	var (
		run      model.Run
		finished sql.NullTime
		logPath  sql.NullString
		status   string
	)
	err := row.Scan(&run.ID, &run.StartedAt, &finished, &run.SourceDir, &run.OutputDir, &run.Mode,
		&logPath, &status, &run.Processed, &run.Matched, &run.Unmatched, &run.Errored, &run.Skipped)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Run{}, err
		}
		return model.Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	run.LogPath = logPath.String
	run.Status = model.RunStatus(status)
	return run, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
