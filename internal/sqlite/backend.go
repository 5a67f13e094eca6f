// Package sqlite persists tasks and users in a single SQLite database file.
// Task mutations are staged in memory and applied transactionally on Commit.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// dbFileName is the database file created inside Config.DataDir.
const dbFileName = "taskdesk.db"

// timeLayout is the storage format for all timestamps. Nanosecond precision
// keeps updated_at strictly increasing across rapid successive updates; the
// fixed-width fraction (unlike RFC3339Nano, which trims trailing zeros)
// makes lexicographic ORDER BY over the TEXT column agree with time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Backend owns the SQLite database and hands out the task and user stores.
type Backend struct {
	mu    sync.RWMutex
	open  bool
	db    *sql.DB
	tasks *Tasks
	users *Users
}

// NewBackend creates an unopened backend; call Open with a Config before use.
func NewBackend() *Backend {
	b := &Backend{}
	b.tasks = &Tasks{backend: b}
	b.users = &Users{backend: b}
	return b
}

// Open creates the data directory if needed, opens the database file, and
// ensures the schema exists. Returns ErrAlreadyOpen if called twice.
func (b *Backend) Open(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return types.ErrAlreadyOpen
	}
	if config.DataDir == "" {
		return types.ErrDataDirEmpty
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(config.DataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// A single connection sidesteps SQLITE_BUSY between concurrent writers.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	b.db = db
	b.open = true
	return nil
}

// Close releases the database. Idempotent: closing a closed backend is a
// no-op. After Close, store operations return ErrBackendClosed.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil
	}
	b.open = false
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Tasks returns the task store. The same handle is shared by all callers.
func (b *Backend) Tasks() *Tasks { return b.tasks }

// Users returns the user store.
func (b *Backend) Users() *Users { return b.users }

// conn returns the live database handle, or ErrBackendClosed.
func (b *Backend) conn() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.open {
		return nil, types.ErrBackendClosed
	}
	return b.db, nil
}

// formatTime renders a timestamp for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp.
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
