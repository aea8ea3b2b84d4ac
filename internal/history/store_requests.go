package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const requestColumns = "id, request_id, source_name, model, format, status, error_message, detected_language, artifact_name, created_at, updated_at"

func scanRequest(scanner interface{ Scan(dest ...any) error }) (*Request, error) {
	var (
		id               int64
		requestID        string
		sourceName       sql.NullString
		model            string
		format           string
		statusStr        string
		errorMessage     sql.NullString
		detectedLanguage sql.NullString
		artifactName     sql.NullString
		createdRaw       sql.NullString
		updatedRaw       sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&requestID,
		&sourceName,
		&model,
		&format,
		&statusStr,
		&errorMessage,
		&detectedLanguage,
		&artifactName,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	request := &Request{
		ID:               id,
		RequestID:        requestID,
		SourceName:       sourceName.String,
		Model:            model,
		Format:           format,
		Status:           Status(statusStr),
		ErrorMessage:     errorMessage.String,
		DetectedLanguage: detectedLanguage.String,
		ArtifactName:     artifactName.String,
	}

	if created, err := parseTimeString(createdRaw.String); err == nil {
		request.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		request.UpdatedAt = updated
	}
	return request, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

// Create records a new request in the pending state.
func (s *Store) Create(ctx context.Context, requestID, sourceName, model, format string) (*Request, error) {
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(ctx,
		`INSERT INTO requests (request_id, source_name, model, format, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		requestID, nullableString(sourceName), model, format, string(StatusPending), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("request id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// SetStatus moves a request to a new lifecycle state.
func (s *Store) SetStatus(ctx context.Context, id int64, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(ctx,
		"UPDATE requests SET status = ?, updated_at = ? WHERE id = ?",
		string(status), now, id,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// MarkPackaged records successful completion along with the artifact produced.
func (s *Store) MarkPackaged(ctx context.Context, id int64, artifactName, detectedLanguage string) error {
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(ctx,
		`UPDATE requests SET status = ?, artifact_name = ?, detected_language = ?, error_message = NULL, updated_at = ?
		 WHERE id = ?`,
		string(StatusPackaged), nullableString(artifactName), nullableString(detectedLanguage), now, id,
	)
	if err != nil {
		return fmt.Errorf("mark packaged: %w", err)
	}
	return nil
}

// MarkFailed records a terminal failure with its user-facing message.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) error {
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(ctx,
		"UPDATE requests SET status = ?, error_message = ?, updated_at = ? WHERE id = ?",
		string(StatusFailed), nullableString(message), now, id,
	)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

// GetByID fetches one request.
func (s *Store) GetByID(ctx context.Context, id int64) (*Request, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE id = ?", id)
	request, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	return request, nil
}

// List returns the most recent requests, newest first. A limit of zero or
// less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Request, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + requestColumns + " FROM requests ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

// Summarize aggregates request counts by terminal outcome.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	ctx = ensureContext(ctx)
	var summary Summary
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM requests GROUP BY status")
	if err != nil {
		return summary, fmt.Errorf("summarize requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var statusStr string
		var count int
		if err := rows.Scan(&statusStr, &count); err != nil {
			return summary, fmt.Errorf("scan summary: %w", err)
		}
		summary.Total += count
		switch Status(statusStr) {
		case StatusPackaged:
			summary.Packaged += count
		case StatusFailed:
			summary.Failed += count
		}
	}
	return summary, rows.Err()
}

// Clear removes all recorded requests.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	res, err := s.execWithRetry(ctx, "DELETE FROM requests")
	if err != nil {
		return 0, fmt.Errorf("clear requests: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear requests: %w", err)
	}
	return removed, nil
}
