package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current ledger schema. Bump on schema changes; stale
// databases are rejected rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("ledger schema version mismatch")

// Operation labels what a record describes.
const (
	OpBuild  = "build"
	OpVerify = "verify"
)

// Record is one remembered build or verification run.
type Record struct {
	ID              int64     `json:"id"`
	Operation       string    `json:"operation"`
	ContainerPath   string    `json:"container_path"`
	PayloadFilename string    `json:"payload_filename"`
	SHA256Hex       string    `json:"sha256_hex"`
	Verdict         string    `json:"verdict,omitempty"`
	Title           string    `json:"title,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Ledger manages history persistence backed by SQLite.
type Ledger struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	l := &Ledger{db: db, path: path}
	if err := l.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return l, nil
}

// Close closes the underlying database connection.
func (l *Ledger) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Append inserts a record. CreatedAt defaults to the current time when zero.
func (l *Ledger) Append(ctx context.Context, record Record) error {
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := l.db.ExecContext(
		ctx,
		`INSERT INTO records (
            operation, container_path, payload_filename,
            sha256_hex, verdict, title, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Operation,
		record.ContainerPath,
		record.PayloadFilename,
		record.SHA256Hex,
		record.Verdict,
		record.Title,
		createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert ledger record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(
		ctx,
		`SELECT id, operation, container_path, payload_filename,
                sha256_hex, verdict, title, created_at
           FROM records
          ORDER BY id DESC
          LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query ledger records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		var createdAt string
		if err := rows.Scan(
			&record.ID,
			&record.Operation,
			&record.ContainerPath,
			&record.PayloadFilename,
			&record.SHA256Hex,
			&record.Verdict,
			&record.Title,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger record: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse ledger timestamp %q: %w", createdAt, err)
		}
		record.CreatedAt = parsed
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger records: %w", err)
	}
	return records, nil
}

func (l *Ledger) initSchema(ctx context.Context) error {
	var tableExists int
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return l.createSchema(ctx)
	}

	var version int
	err = l.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, l.path)
	}
	return nil
}

func (l *Ledger) createSchema(ctx context.Context) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
