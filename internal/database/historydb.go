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

	"github.com/nao1215/savedindex/internal/model"
)

// DBFileName is the history database file name inside the data directory.
const DBFileName = "savedindex.db"

// ErrNoRuns is returned when no run matches a query.
var ErrNoRuns = errors.New("no recorded runs")

// HistoryDB stores enrichment run summaries in SQLite.
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

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite: mode=rw refuses to create the file, mode=rwc allows it.
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

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		command TEXT NOT NULL,
		input_csv TEXT NOT NULL,
		output_csv TEXT NOT NULL,
		rows INTEGER NOT NULL,
		enriched_rows INTEGER NOT NULL,
		counter_label TEXT NOT NULL,
		columns TEXT NOT NULL,
		column_fill TEXT NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Run is a recorded enrichment run.
type Run struct {
	// ID is the unique identifier of the run in the database.
	ID int64 `json:"id"`

	model.Summary
}

// SaveRun records a run summary and returns its ID.
func (hdb *HistoryDB) SaveRun(ctx context.Context, s *model.Summary) (int64, error) {
	columnsJSON, err := json.Marshal(s.Columns)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize columns: %w", err)
	}
	fillJSON, err := json.Marshal(s.ColumnFill)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize column fill: %w", err)
	}

	query := `
	INSERT INTO runs (command, input_csv, output_csv, rows, enriched_rows, counter_label,
		columns, column_fill, started_at, finished_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		s.Command,
		s.InputCSV,
		s.OutputCSV,
		s.Rows,
		s.EnrichedRows,
		s.CounterLabel,
		string(columnsJSON),
		string(fillJSON),
		s.StartedAt.UTC().Format(time.RFC3339Nano),
		s.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns returns the most recent runs, newest first.
// When command is non-empty only runs of that command are returned.
func (hdb *HistoryDB) ListRuns(ctx context.Context, command string, limit int) ([]Run, error) {
	query := `
	SELECT id, command, input_csv, output_csv, rows, enriched_rows, counter_label,
		columns, column_fill, started_at, finished_at
	FROM runs
	WHERE ? = '' OR command = ?
	ORDER BY id DESC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, command, command, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// LatestRun returns the most recent run of command.
// It returns ErrNoRuns when the command has never been recorded.
func (hdb *HistoryDB) LatestRun(ctx context.Context, command string) (*Run, error) {
	runs, err := hdb.ListRuns(ctx, command, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrNoRuns
	}
	return &runs[0], nil
}

// scanner is satisfied by *sql.Rows and *sql.Row.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run         Run
		columnsJSON string
		fillJSON    string
		startedAt   string
		finishedAt  string
	)

	err := row.Scan(
		&run.ID,
		&run.Command,
		&run.InputCSV,
		&run.OutputCSV,
		&run.Rows,
		&run.EnrichedRows,
		&run.CounterLabel,
		&columnsJSON,
		&fillJSON,
		&startedAt,
		&finishedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}

	if err := json.Unmarshal([]byte(columnsJSON), &run.Columns); err != nil {
		run.Columns = nil
	}
	if err := json.Unmarshal([]byte(fillJSON), &run.ColumnFill); err != nil || run.ColumnFill == nil {
		run.ColumnFill = make(map[string]int)
	}
	run.StartedAt = parseTimestamp(startedAt)
	run.FinishedAt = parseTimestamp(finishedAt)

	return run, nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
