package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/wordlist/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "wordlist.db"

// HistoryDB stores validation runs in SQLite.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// If CreateIfNotExists is false and the database doesn't exist,
// ErrDatabaseNotFound is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS validation_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		validation_date TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_files INTEGER NOT NULL,
		valid_files INTEGER NOT NULL,
		invalid_files INTEGER NOT NULL,
		total_warnings INTEGER NOT NULL,
		total_size_bytes INTEGER NOT NULL,
		total_entries INTEGER NOT NULL,
		total_unique_entries INTEGER NOT NULL,
		manifest_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_root ON validation_runs(root);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// RunMetadata describes a stored run without its manifest.
type RunMetadata struct {
	// ID is the unique identifier of the run in the database.
	ID int64 `json:"id"`

	// Root is the absolute directory that was validated.
	Root string `json:"root"`

	// ValidationDate is the manifest's validation date.
	ValidationDate string `json:"validation_date"`

	// Timestamp is when the run was stored, in UTC.
	Timestamp time.Time `json:"timestamp"`

	// TotalFiles is the manifest's file count.
	TotalFiles int `json:"total_files"`

	// Summary is the manifest's summary.
	Summary model.Summary `json:"summary"`
}

// Run is a stored run including its manifest.
type Run struct {
	RunMetadata

	// Manifest is the manifest as written by the run.
	Manifest *model.Manifest `json:"manifest"`
}

// SaveRun stores m as a run of root and returns its ID.
func (h *HistoryDB) SaveRun(ctx context.Context, root string, m *model.Manifest) (int64, error) {
	manifestJSON, err := json.Marshal(m)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize manifest: %w", err)
	}

	query := `
	INSERT INTO validation_runs (
		root, validation_date, total_files, valid_files, invalid_files,
		total_warnings, total_size_bytes, total_entries, total_unique_entries,
		manifest_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	s := m.Summary
	res, err := h.db.ExecContext(ctx, query,
		root,
		m.ValidationDate,
		m.TotalFiles,
		s.ValidFiles,
		s.InvalidFiles,
		s.TotalWarnings,
		s.TotalSizeBytes,
		s.TotalEntries,
		s.TotalUniqueEntries,
		string(manifestJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save validation run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

const metadataColumns = `id, root, validation_date, timestamp, total_files,
	valid_files, invalid_files, total_warnings, total_size_bytes,
	total_entries, total_unique_entries`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row rowScanner, extra ...any) (RunMetadata, error) {
	var meta RunMetadata
	var timestamp string
	s := &meta.Summary
	dest := append([]any{
		&meta.ID, &meta.Root, &meta.ValidationDate, &timestamp, &meta.TotalFiles,
		&s.ValidFiles, &s.InvalidFiles, &s.TotalWarnings, &s.TotalSizeBytes,
		&s.TotalEntries, &s.TotalUniqueEntries,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return RunMetadata{}, err
	}
	meta.Timestamp = parseTimestamp(timestamp)
	return meta, nil
}

// ListRuns returns the runs of root, newest first.
func (h *HistoryDB) ListRuns(ctx context.Context, root string) ([]RunMetadata, error) {
	query := `SELECT ` + metadataColumns + `
	FROM validation_runs
	WHERE root = ?
	ORDER BY id DESC
	`

	rows, err := h.db.QueryContext(ctx, query, root)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMetadata
	for rows.Next() {
		meta, err := scanMetadata(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, meta)
	}

	return runs, rows.Err()
}

// ListRoots returns every root with at least one stored run, sorted.
func (h *HistoryDB) ListRoots(ctx context.Context) ([]string, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT DISTINCT root FROM validation_runs ORDER BY root`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var root string
		if err := rows.Scan(&root); err != nil {
			return nil, fmt.Errorf("failed to scan root: %w", err)
		}
		roots = append(roots, root)
	}

	return roots, rows.Err()
}

// GetRun returns the run with the given ID, or ErrRunNotFound.
func (h *HistoryDB) GetRun(ctx context.Context, id int64) (*Run, error) {
	query := `SELECT ` + metadataColumns + `, manifest_json
	FROM validation_runs
	WHERE id = ?
	`

	var manifestJSON string
	meta, err := scanMetadata(h.db.QueryRowContext(ctx, query, id), &manifestJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return decodeRun(meta, manifestJSON)
}

// LatestRuns returns up to limit runs of root, newest first.
func (h *HistoryDB) LatestRuns(ctx context.Context, root string, limit int) ([]*Run, error) {
	query := `SELECT ` + metadataColumns + `, manifest_json
	FROM validation_runs
	WHERE root = ?
	ORDER BY id DESC
	LIMIT ?
	`

	rows, err := h.db.QueryContext(ctx, query, root, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var manifestJSON string
		meta, err := scanMetadata(rows, &manifestJSON)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run, err := decodeRun(meta, manifestJSON)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func decodeRun(meta RunMetadata, manifestJSON string) (*Run, error) {
	var m model.Manifest
	if err := json.Unmarshal([]byte(manifestJSON), &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest of run %d: %w", meta.ID, err)
	}
	return &Run{RunMetadata: meta, Manifest: &m}, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp parses a timestamp in any of timestampFormats.
// It returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
