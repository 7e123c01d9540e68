// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records conversion runs in a local SQLite database and
// exports them as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf2pptx/pkg/types"
)

const defaultMaxResults = 20

// timeLayout is fixed-width so started_at sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages the history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at path, creating its parent
// directory and the schema if needed.
func Open(path string, maxResults int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			document_path TEXT NOT NULL,
			output_path TEXT,
			backend TEXT,
			dpi INTEGER,
			pages INTEGER,
			status TEXT NOT NULL,
			error TEXT,
			cleanup_warning TEXT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_started_at ON conversions(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one conversion. Re-recording an id replaces the row.
func (s *Store) Record(ctx context.Context, c types.Conversion) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO conversions
			(id, document_path, output_path, backend, dpi, pages, status, error, cleanup_warning, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.DocumentPath, c.OutputPath, c.Backend, c.DPI, c.Pages, string(c.Status),
		c.Error, c.CleanupWarning, c.StartedAt.UTC().Format(timeLayout), c.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording conversion %s: %w", c.ID, err)
	}
	return nil
}

// QueryOptions filters List results.
type QueryOptions struct {
	// Status restricts results to one outcome; empty means all.
	Status types.ConversionStatus
	// Document restricts results to one source document path.
	Document string
	// MaxResults caps the result count; zero uses the store default.
	MaxResults int
}

// List returns conversions matching opts, newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.Conversion, error) {
	query := `SELECT id, document_path, output_path, backend, dpi, pages, status, error, cleanup_warning, started_at, duration_ms
		FROM conversions WHERE 1=1`
	var args []any
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(opts.Status))
	}
	if opts.Document != "" {
		query += ` AND document_path = ?`
		args = append(args, opts.Document)
	}
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}
	query += ` ORDER BY started_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var out []types.Conversion
	for rows.Next() {
		var (
			c                                 types.Conversion
			output, backend, errText, cleanup sql.NullString
			dpi, pages, durationMS            sql.NullInt64
			status, startedAt                 string
		)
		if err := rows.Scan(&c.ID, &c.DocumentPath, &output, &backend, &dpi, &pages,
			&status, &errText, &cleanup, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		c.OutputPath = output.String
		c.Backend = backend.String
		c.DPI = int(dpi.Int64)
		c.Pages = int(pages.Int64)
		c.Status = types.ConversionStatus(status)
		c.Error = errText.String
		c.CleanupWarning = cleanup.String
		c.Duration = time.Duration(durationMS.Int64) * time.Millisecond
		if t, err := time.Parse(timeLayout, startedAt); err == nil {
			c.StartedAt = t
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversions: %w", err)
	}
	return out, nil
}
