package cache

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

	"github.com/yeager/tp-lint/internal/model"
)

// dbFileName is the snapshot database filename inside the cache directory.
const dbFileName = "tp-lint.db"

// Cache stores coverage matrix snapshots in SQLite.
//
// Design decision: We keep full matrix JSON per snapshot rather than a
// normalized (domain, language, percent) table. The matrix is read and
// written as a unit, compare works on two whole snapshots, and the JSON
// form survives model changes that a fixed schema would not.
type Cache struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Cache behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default cache options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the snapshot cache in the given directory.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned instead of silently creating an empty history.
func Open(dir string, opts Options) (*Cache, error) {
	dbPath := filepath.Join(dir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("cache not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("check cache path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	// mode=rw prevents the driver from creating a new file when the
	// caller asked for an existing cache only.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	c := &Cache{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := c.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (c *Cache) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matrix_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		matrix_json TEXT NOT NULL,
		total_languages INTEGER NOT NULL,
		total_domains INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_timestamp ON matrix_snapshots(timestamp);
	`

	_, err := c.db.ExecContext(context.Background(), schema)
	return err
}

// Snapshot is one stored matrix with its capture time.
type Snapshot struct {
	// ID is the database row identifier.
	ID int64

	// Timestamp is when the matrix was captured.
	Timestamp time.Time

	// Matrix is the full parsed matrix.
	Matrix *model.Matrix
}

// SaveSnapshot stores a matrix as a new snapshot and returns its ID.
func (c *Cache) SaveSnapshot(ctx context.Context, m *model.Matrix) (int64, error) {
	matrixJSON, err := json.Marshal(m)
	if err != nil {
		return 0, fmt.Errorf("serialize matrix: %w", err)
	}

	query := `
	INSERT INTO matrix_snapshots (matrix_json, total_languages, total_domains)
	VALUES (?, ?, ?)
	`

	result, err := c.db.ExecContext(ctx, query,
		string(matrixJSON), len(m.Languages), len(m.Domains))
	if err != nil {
		return 0, fmt.Errorf("save snapshot: %w", err)
	}

	return result.LastInsertId()
}

// LatestSnapshot returns the most recent snapshot, or nil when the cache
// is empty.
func (c *Cache) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	query := `
	SELECT id, timestamp, matrix_json FROM matrix_snapshots
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`
	return c.querySnapshot(ctx, query)
}

// FreshSnapshot returns the most recent snapshot younger than ttl, or nil
// when none qualifies. A zero ttl disables the age check.
func (c *Cache) FreshSnapshot(ctx context.Context, ttl time.Duration) (*Snapshot, error) {
	if ttl == 0 {
		return c.LatestSnapshot(ctx)
	}

	query := `
	SELECT id, timestamp, matrix_json FROM matrix_snapshots
	WHERE timestamp > datetime('now', ?)
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`
	modifier := fmt.Sprintf("-%d seconds", int(ttl.Seconds()))
	return c.querySnapshot(ctx, query, modifier)
}

// LatestTwo returns up to the two most recent snapshots, newest first.
// The compare command needs exactly this pair.
func (c *Cache) LatestTwo(ctx context.Context) ([]*Snapshot, error) {
	query := `
	SELECT id, timestamp, matrix_json FROM matrix_snapshots
	ORDER BY timestamp DESC, id DESC
	LIMIT 2
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// Prune deletes all but the keep most recent snapshots.
func (c *Cache) Prune(ctx context.Context, keep int) error {
	query := `
	DELETE FROM matrix_snapshots
	WHERE id NOT IN (
		SELECT id FROM matrix_snapshots
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	)
	`

	if _, err := c.db.ExecContext(ctx, query, keep); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// querySnapshot runs a single-row snapshot query; no rows yields (nil, nil).
func (c *Cache) querySnapshot(ctx context.Context, query string, args ...any) (*Snapshot, error) {
	row := c.db.QueryRowContext(ctx, query, args...)
	s, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*Snapshot, error) {
	var (
		s          Snapshot
		timestamp  string
		matrixJSON string
	)
	if err := row.Scan(&s.ID, &timestamp, &matrixJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}

	s.Timestamp = parseTimestamp(timestamp)

	var m model.Matrix
	if err := json.Unmarshal([]byte(matrixJSON), &m); err != nil {
		return nil, fmt.Errorf("parse snapshot matrix: %w", err)
	}
	s.Matrix = &m

	return &s, nil
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

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
