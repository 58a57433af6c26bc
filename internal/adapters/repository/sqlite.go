package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/deckgen/pkg/logger"
	"github.com/okian/deckgen/pkg/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	id          TEXT PRIMARY KEY,
	deck_title  TEXT NOT NULL,
	output_path TEXT NOT NULL,
	slides      INTEGER NOT NULL,
	elements    INTEGER NOT NULL,
	bytes       INTEGER NOT NULL,
	sha256      TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_builds_created ON builds(created_at);
`

const selectBuild = `SELECT id, deck_title, output_path, slides, elements, bytes, sha256, duration_ms, created_at FROM builds`

// SQLiteLedger is a Ledger backed by a SQLite file.
type SQLiteLedger struct {
	db       *sql.DB
	log      logger.Logger
	maxLimit int
}

var _ Ledger = (*SQLiteLedger)(nil)

// Open opens or creates the ledger at path and applies the schema.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteLedger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOpenLedger, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenLedger, err)
	}
	// One writer; SQLite serialises anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: schema: %w", ErrOpenLedger, err)
	}

	s := &SQLiteLedger{db: db, log: logger.Nop(), maxLimit: MaxRecentLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Record stores b.
func (s *SQLiteLedger) Record(ctx context.Context, b Build) error {
	if b.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidBuild)
	}
	start := time.Now()
	defer func() { metrics.RecordLedgerLatency("record", msSince(start)) }()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (id, deck_title, output_path, slides, elements, bytes, sha256, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.DeckTitle, b.OutputPath, b.Slides, b.Elements, b.Bytes, b.SHA256, b.DurationMS,
		b.CreatedAt.UTC().UnixNano(),
	)
	if err != nil {
		metrics.RecordErrorByComponent("ledger", "record")
		return fmt.Errorf("record build %s: %w", b.ID, err)
	}
	if n, err := s.Count(ctx); err == nil {
		metrics.UpdateLedgerRecords(n)
	}
	s.log.Debug(ctx, "build recorded", logger.String("id", b.ID), logger.String("output", b.OutputPath))
	return nil
}

// Get returns the build with the given ID.
func (s *SQLiteLedger) Get(ctx context.Context, id string) (Build, error) {
	start := time.Now()
	defer func() { metrics.RecordLedgerLatency("get", msSince(start)) }()

	b, err := scanBuild(s.db.QueryRowContext(ctx, selectBuild+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Build{}, fmt.Errorf("get build %s: %w", id, err)
	}
	return b, nil
}

// Recent returns up to limit builds, newest first.
func (s *SQLiteLedger) Recent(ctx context.Context, limit int) ([]Build, error) {
	if limit <= 0 || limit > s.maxLimit {
		metrics.RecordErrorByComponent("ledger", "invalid_limit")
		return nil, fmt.Errorf("%w: %d (1..%d)", ErrInvalidLimit, limit, s.maxLimit)
	}
	start := time.Now()
	defer func() { metrics.RecordLedgerLatency("recent", msSince(start)) }()

	rows, err := s.db.QueryContext(ctx, selectBuild+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var out []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Count returns the number of recorded builds.
func (s *SQLiteLedger) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count builds: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteLedger) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(r scanner) (Build, error) {
	var b Build
	var created int64
	err := r.Scan(&b.ID, &b.DeckTitle, &b.OutputPath, &b.Slides, &b.Elements, &b.Bytes, &b.SHA256, &b.DurationMS, &created)
	if err != nil {
		return Build{}, err
	}
	b.CreatedAt = time.Unix(0, created).UTC()
	return b, nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
