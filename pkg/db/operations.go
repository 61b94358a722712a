package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// InsertURL parses and inserts a URL, returning the url_id.
// If the URL already exists, returns the existing url_id.
func (db *DB) InsertURL(ctx context.Context, rawURL string) (int64, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}

	var existingID int64
	err = db.QueryRowContext(ctx, "SELECT url_id FROM urls WHERE original_url = ?", rawURL).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing URL: %w", err)
	}

	// scheme + host + path, no query/fragment
	canonicalURL := fmt.Sprintf("%s://%s%s", parsed.Scheme, parsed.Host, parsed.Path)

	result, err := db.ExecContext(ctx, `
		INSERT INTO urls (original_url, canonical_url, scheme, domain, path, fragment)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rawURL, canonicalURL, parsed.Scheme, parsed.Host, parsed.Path, parsed.Fragment)
	if err != nil {
		return 0, fmt.Errorf("failed to insert URL: %w", err)
	}

	urlID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get URL ID: %w", err)
	}
	return urlID, nil
}

// RecordAccess records a scrape attempt in url_accesses.
func (db *DB) RecordAccess(ctx context.Context, urlID int64, statusCode int, errorType string, success bool) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO url_accesses (url_id, status_code, error_type, success)
		VALUES (?, ?, ?, ?)
	`, urlID, statusCode, errorType, success)
	if err != nil {
		return fmt.Errorf("failed to record access: %w", err)
	}
	return nil
}

// AccessRecord represents a URL access attempt.
type AccessRecord struct {
	AccessID   int64
	AccessedAt time.Time
	StatusCode int
	ErrorType  string
	Success    bool
}

// GetLastAccess returns the most recent access record for a URL, or nil.
func (db *DB) GetLastAccess(ctx context.Context, urlID int64) (*AccessRecord, error) {
	var record AccessRecord
	err := db.QueryRowContext(ctx, `
		SELECT access_id, accessed_at, status_code, error_type, success
		FROM url_accesses
		WHERE url_id = ?
		ORDER BY access_id DESC
		LIMIT 1
	`, urlID).Scan(&record.AccessID, &record.AccessedAt, &record.StatusCode, &record.ErrorType, &record.Success)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last access: %w", err)
	}
	return &record, nil
}

// GetURLID returns the url_id for a given original URL.
func (db *DB) GetURLID(ctx context.Context, originalURL string) (int64, error) {
	var urlID int64
	err := db.QueryRowContext(ctx, "SELECT url_id FROM urls WHERE original_url = ?", originalURL).Scan(&urlID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("URL %s: %w", originalURL, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get URL ID: %w", err)
	}
	return urlID, nil
}

// TrackAccess registers rawURL and records one scrape attempt against it.
func (db *DB) TrackAccess(ctx context.Context, rawURL string, statusCode int, errorType string, success bool) error {
	urlID, err := db.InsertURL(ctx, rawURL)
	if err != nil {
		return err
	}
	return db.RecordAccess(ctx, urlID, statusCode, errorType, success)
}
