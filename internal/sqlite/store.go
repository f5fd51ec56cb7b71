// Package sqlite implements the SQLite storage backend for shelfmark.
// The database file is the single source of truth; every operation runs
// parameterized SQL against it, and the issue/return pairs run inside
// explicit transactions so the availability invariant survives a crash
// between statements.
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver registration

	"github.com/mesh-intelligence/shelfmark/pkg/types"
)

const (
	// dbFileName is the database file created inside the data directory.
	dbFileName = "library.db"

	dialectSQLite = "sqlite3"

	tableBooks   = "books"
	tableMembers = "members"
	tableLoans   = "loans"
)

// dialect builds SELECT statements for the sqlite dialect. The dialect only
// shapes SQL text; execution goes through the modernc driver.
var dialect = goqu.Dialect(dialectSQLite)

// sqliteTimeLayout is the format SQLite's CURRENT_TIMESTAMP default
// produces. Loan dates written by this package use RFC 3339 instead.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Store implements the types.Catalog interface on a local SQLite file.
type Store struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sqlx.DB
	logger types.Logger
}

// Compile-time interface check: Store must implement Catalog.
var _ types.Catalog = (*Store)(nil)

// Option configures a Store created by NewStore.
type Option func(*Store)

// WithLogger sets the logger for the store. Debug level carries SQL text
// with execution timing; Info level carries operation summaries. A nil
// logger (the default) disables logging.
func WithLogger(logger types.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a new SQLite store instance.
// The store is not open; call Open with a Config to initialize.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open initializes the store with the given configuration. Creates the
// data directory if needed, opens the database file, and applies the
// schema idempotently; an existing database file is reused as is.
// Returns ErrAlreadyOpen if the store is already open.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrAlreadyOpen
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sqlx.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	// One connection pins the single-actor model and keeps the foreign-key
	// pragma on every statement.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.config = config
	s.open = true

	s.logDebug("store opened", "path", dbPath)
	return nil
}

// Close releases the database connection. After Close, all operations
// return ErrStoreClosed. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil // idempotent
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		s.db = nil
	}

	s.open = false
	s.logDebug("store closed")
	return nil
}

// Config returns the configuration the store was opened with.
func (s *Store) Config() types.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// parseTimestamp accepts both timestamp layouts found in the database:
// RFC 3339 for loan dates written by this package, and SQLite's
// CURRENT_TIMESTAMP format for row-creation defaults.
func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(sqliteTimeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", raw, err)
	}
	return ts, nil
}

// nullString converts an empty string to a NULL bind value.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt converts a zero int to a NULL bind value.
func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}

// isUniqueViolation reports whether err is the driver's UNIQUE constraint
// failure for the given column, for example "members.email".
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}

// isForeignKeyViolation reports whether err is the driver's FOREIGN KEY
// constraint failure.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func (s *Store) logDebug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Store) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

// logQuery reports an executed SELECT with its duration at Debug level.
func (s *Store) logQuery(sqlQuery string, duration time.Duration) {
	s.logDebug("query executed", "sql", sqlQuery, "duration_ms", duration.Milliseconds())
}
