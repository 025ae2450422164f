// Package sqlite provides a SQLite-backed hint store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hanwool95/game-socket-server/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS hints (
	id          TEXT PRIMARY KEY,
	secret_name TEXT NOT NULL,
	hint_text   TEXT NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hints_secret_created ON hints (secret_name, created_at);
`

// HintStore persists hint increments in SQLite.
type HintStore struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the database at dsn and creates the schema if needed.
func Open(ctx context.Context, dsn string) (*HintStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlite dsn is required")
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &HintStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *HintStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *HintStore) RecordHint(ctx context.Context, secretName, hintText string) error {
	if secretName == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO hints (id, secret_name, hint_text, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(),
		secretName,
		hintText,
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert hint: %w", err)
	}
	return nil
}

// ListHints returns the hints for a secret oldest first.
func (s *HintStore) ListHints(ctx context.Context, secretName string) ([]domain.HintRecord, error) {
	if secretName == "" {
		return nil, domain.ErrInvalidInput
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, secret_name, hint_text, created_at
		   FROM hints
		  WHERE secret_name = ?
		  ORDER BY created_at, rowid`,
		secretName,
	)
	if err != nil {
		return nil, fmt.Errorf("query hints: %w", err)
	}
	defer rows.Close()

	records := []domain.HintRecord{}
	for rows.Next() {
		var (
			record    domain.HintRecord
			createdAt int64
		)
		if err := rows.Scan(&record.ID, &record.SecretName, &record.HintText, &createdAt); err != nil {
			return nil, fmt.Errorf("scan hint: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hints: %w", err)
	}
	return records, nil
}
