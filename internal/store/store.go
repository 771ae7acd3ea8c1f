package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Options carries engine configuration applied at open time. These are
// passed through to SQLite as PRAGMAs; the store itself attaches no
// semantics to them.
type Options struct {
	// BusyTimeout is how long a statement waits on a locked database
	// before failing with a busy error.
	BusyTimeout time.Duration

	// JournalMode is the SQLite journal mode ("WAL", "DELETE", ...).
	JournalMode string

	// Synchronous is the SQLite synchronous level ("NORMAL", "FULL", ...).
	Synchronous string
}

// DefaultOptions returns the configuration used by Open.
func DefaultOptions() Options {
	return Options{
		BusyTimeout: 5 * time.Second,
		JournalMode: "WAL",
		Synchronous: "NORMAL",
	}
}

// Store owns a single SQLiteKV database file and exposes the key/value
// operations. A Store may be shared by multiple goroutines; writer
// serialization is delegated to SQLite.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLiteKV database at the given path with
// DefaultOptions, ensuring the wire-contract schema exists.
//
// This function is idempotent - safe to call against a file that already
// carries the schema.
func Open(path string) (*Store, error) {
	return OpenWithOptions(path, DefaultOptions())
}

// OpenWithOptions is Open with explicit engine options.
func OpenWithOptions(path string, opts Options) (*Store, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &StoreError{Code: CodeUnavailable, Op: "open", Err: err}
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &StoreError{Code: CodeUnavailable, Op: "open", Err: err}
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db, opts); err != nil {
		db.Close()
		return nil, &StoreError{Code: CodeUnavailable, Op: "open", Err: err}
	}

	// A corrupt or non-database file surfaces here, on the first real
	// statement against it.
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, &StoreError{Code: CodeUnavailable, Op: "open", Err: err}
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// applyPragmas sets the SQLite configuration for this connection.
func applyPragmas(db *sql.DB, opts Options) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA journal_mode = %s", opts.JournalMode),
		fmt.Sprintf("PRAGMA synchronous = %s", opts.Synchronous),
		fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeout.Milliseconds()),
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates the keys and vals tables and the idx_keys index if
// they don't exist. Idempotent: every statement is IF NOT EXISTS.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
