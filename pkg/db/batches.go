package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

// BatchRun represents one batch invocation.
type BatchRun struct {
	BatchID      int64
	CreatedAt    time.Time
	URLCount     int
	SuccessCount int
	FailedCount  int
}

// CreateBatchRun creates a batch run row and returns its id.
func (db *DB) CreateBatchRun(ctx context.Context, urlCount int) (int64, error) {
	result, err := db.ExecContext(ctx, `
		INSERT INTO batch_runs (url_count)
		VALUES (?)
	`, urlCount)
	if err != nil {
		return 0, fmt.Errorf("failed to create batch run: %w", err)
	}
	batchID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get batch ID: %w", err)
	}
	return batchID, nil
}

// InsertBatchResult stores the outcome of one page of a batch.
func (db *DB) InsertBatchResult(ctx context.Context, batchID int64, position int, summary models.BatchSummary) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO batch_results (batch_id, position, url, success, overall_score, error_message, snapshot_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, batchID, position, summary.URL, summary.Success, summary.OverallScore,
		nullString(summary.Error), nullString(summary.SnapshotID))
	if err != nil {
		return fmt.Errorf("failed to insert batch result: %w", err)
	}
	return nil
}

// UpdateBatchRunStats updates the success/failed counters of a batch run.
func (db *DB) UpdateBatchRunStats(ctx context.Context, batchID int64, successCount, failedCount int) error {
	_, err := db.ExecContext(ctx, `
		UPDATE batch_runs
		SET success_count = ?, failed_count = ?
		WHERE batch_id = ?
	`, successCount, failedCount, batchID)
	if err != nil {
		return fmt.Errorf("failed to update batch stats: %w", err)
	}
	return nil
}

// GetBatchRun returns one batch run.
func (db *DB) GetBatchRun(ctx context.Context, batchID int64) (*BatchRun, error) {
	var run BatchRun
	err := db.QueryRowContext(ctx, `
		SELECT batch_id, created_at, url_count, success_count, failed_count
		FROM batch_runs
		WHERE batch_id = ?
	`, batchID).Scan(&run.BatchID, &run.CreatedAt, &run.URLCount, &run.SuccessCount, &run.FailedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("batch %d: %w", batchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch run: %w", err)
	}
	return &run, nil
}

// ListBatchRuns returns recent batch runs, newest first. limit <= 0 lists all.
func (db *DB) ListBatchRuns(ctx context.Context, limit int) ([]BatchRun, error) {
	builder := sq.Select("batch_id", "created_at", "url_count", "success_count", "failed_count").
		From("batch_runs").
		OrderBy("batch_id DESC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build batch query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch runs: %w", err)
	}
	defer rows.Close()

	var runs []BatchRun
	for rows.Next() {
		var run BatchRun
		if err := rows.Scan(&run.BatchID, &run.CreatedAt, &run.URLCount, &run.SuccessCount, &run.FailedCount); err != nil {
			return nil, fmt.Errorf("failed to scan batch run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batch runs: %w", err)
	}
	return runs, nil
}

// GetBatchResults returns the per-page results of a batch in input order.
func (db *DB) GetBatchResults(ctx context.Context, batchID int64) ([]models.BatchSummary, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT url, success, overall_score, error_message, snapshot_id
		FROM batch_results
		WHERE batch_id = ?
		ORDER BY position
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch results: %w", err)
	}
	defer rows.Close()

	var results []models.BatchSummary
	for rows.Next() {
		var (
			r              models.BatchSummary
			errMsg, snapID sql.NullString
		)
		if err := rows.Scan(&r.URL, &r.Success, &r.OverallScore, &errMsg, &snapID); err != nil {
			return nil, fmt.Errorf("failed to scan batch result: %w", err)
		}
		r.Error = errMsg.String
		r.SnapshotID = snapID.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batch results: %w", err)
	}
	return results, nil
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
