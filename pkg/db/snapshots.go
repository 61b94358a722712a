package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/GlobalTax/nrro-es-starter-sub005/models"
)

// SnapshotSummary is a snapshot row without its payload.
type SnapshotSummary struct {
	ID          string
	URL         string
	GlobalScore int
	State       models.SessionState
	CreatedAt   time.Time
}

// SnapshotFilter narrows ListSnapshots. Zero values mean no filter.
type SnapshotFilter struct {
	URL   string
	Since time.Time
	Limit int
}

// SaveAuditSnapshot appends a snapshot and returns its id. A missing id is
// generated and a zero CreatedAt is set to now. Existing rows are never updated.
func (db *DB) SaveAuditSnapshot(ctx context.Context, snap models.AuditSnapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}
	snap.CreatedAt = snap.CreatedAt.UTC()

	payload, err := json.Marshal(snap.Session)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query, args, err := sq.Insert("audit_snapshots").
		Columns("snapshot_id", "url", "global_score", "state", "created_at", "payload").
		Values(snap.ID, snap.Session.URL, snap.Session.GlobalScore, string(snap.Session.State), snap.CreatedAt, string(payload)).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build snapshot insert: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return snap.ID, nil
}

// GetSnapshot loads a snapshot with its full session payload.
func (db *DB) GetSnapshot(ctx context.Context, id string) (*models.AuditSnapshot, error) {
	var (
		snap    models.AuditSnapshot
		payload string
	)
	err := db.QueryRowContext(ctx, `
		SELECT snapshot_id, created_at, payload
		FROM audit_snapshots
		WHERE snapshot_id = ?
	`, id).Scan(&snap.ID, &snap.CreatedAt, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &snap.Session); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	return &snap, nil
}

// ListSnapshots returns snapshot summaries, newest first.
func (db *DB) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]SnapshotSummary, error) {
	builder := sq.Select("snapshot_id", "url", "global_score", "state", "created_at").
		From("audit_snapshots").
		OrderBy("created_at DESC", "snapshot_id")
	if filter.URL != "" {
		builder = builder.Where(sq.Eq{"url": filter.URL})
	}
	if !filter.Since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"created_at": filter.Since.UTC()})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot query: %w", err)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []SnapshotSummary
	for rows.Next() {
		var (
			s     SnapshotSummary
			state string
		)
		if err := rows.Scan(&s.ID, &s.URL, &s.GlobalScore, &state, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.State = models.SessionState(state)
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}
