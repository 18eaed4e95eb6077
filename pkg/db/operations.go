package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const upsertWord = `
	INSERT INTO words_counter (word, count)
	VALUES (?, ?)
	ON CONFLICT(word) DO UPDATE SET count = count + excluded.count
`

// UpsertBatch adds every count in entries to the stored totals inside one
// transaction. New words are inserted, existing ones incremented in place;
// either the whole batch lands or none of it does.
func (db *DB) UpsertBatch(ctx context.Context, entries map[string]int) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback() // Rollback error less important than the cause
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsertWord)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for word, count := range entries {
		if _, err = stmt.ExecContext(ctx, word, count); err != nil {
			return fmt.Errorf("failed to upsert %q: %w", word, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// GetCount returns the cumulative count for word, or 0 if it was never stored.
func (db *DB) GetCount(ctx context.Context, word string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT count FROM words_counter WHERE word = ?", word).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get word count: %w", err)
	}
	return count, nil
}

// Ingestion is one recorded ingest call.
type Ingestion struct {
	IngestionID   string    `json:"ingestion_id" yaml:"ingestion_id"`
	SourceKind    string    `json:"source_kind" yaml:"source_kind"`
	Format        string    `json:"format,omitempty" yaml:"format,omitempty"`
	InputHash     string    `json:"input_hash" yaml:"input_hash"`
	TokenCount    int       `json:"token_count" yaml:"token_count"`
	DistinctWords int       `json:"distinct_words" yaml:"distinct_words"`
	Language      string    `json:"language,omitempty" yaml:"language,omitempty"`
	Status        string    `json:"status" yaml:"status"`
	DurationMS    int64     `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// RecordIngestion stores an ingestion row.
func (db *DB) RecordIngestion(ctx context.Context, in Ingestion) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO ingestions (ingestion_id, source_kind, format, input_hash,
		                        token_count, distinct_words, language, status, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.IngestionID, in.SourceKind, NewNullString(in.Format), in.InputHash,
		in.TokenCount, in.DistinctWords, NewNullString(in.Language), in.Status, in.DurationMS)
	if err != nil {
		return fmt.Errorf("failed to record ingestion: %w", err)
	}
	return nil
}

// ListIngestions returns the most recent ingestions first.
func (db *DB) ListIngestions(ctx context.Context, limit int) ([]Ingestion, error) {
	query := `
		SELECT ingestion_id, source_kind, format, input_hash, token_count,
		       distinct_words, language, status, duration_ms, created_at
		FROM ingestions
		ORDER BY created_at DESC, ingestion_id DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingestions: %w", err)
	}
	defer rows.Close()

	var ingestions []Ingestion
	for rows.Next() {
		var in Ingestion
		var format, language sql.NullString
		if err := rows.Scan(&in.IngestionID, &in.SourceKind, &format, &in.InputHash, &in.TokenCount,
			&in.DistinctWords, &language, &in.Status, &in.DurationMS, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingestion: %w", err)
		}
		in.Format = format.String
		in.Language = language.String
		ingestions = append(ingestions, in)
	}

	return ingestions, rows.Err()
}

// NewNullString stores empty strings as NULL.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
