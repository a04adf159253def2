// Package state persists search state across runs: the last query typed and
// which providers the user switched off.
package state

import (
	"database/sql"
	"log/slog"
	"sync"
	"time"
)

// queryDelay is how long typing must pause before the query is written.
const queryDelay = 500 * time.Millisecond

const schema = `
CREATE TABLE IF NOT EXISTS search_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	query TEXT,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS provider_state (
	provider_id TEXT PRIMARY KEY,
	enabled INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store is what the application needs from the state backend.
type Store interface {
	LastQuery() (string, error)
	SaveQuery(query string)
	ProviderToggles() (map[string]bool, error)
	SaveProviderEnabled(id string, enabled bool) error
	Close() error
}

var _ Store = (*Manager)(nil)

// Manager is the SQLite-backed Store.
type Manager struct {
	db     *sql.DB
	logger *slog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	query  string
	dirty  bool
	closed bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Manager on an open database, creating its tables.
// The caller keeps ownership of db.
func New(db *sql.DB, opts ...Option) (*Manager, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	m := &Manager{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// LastQuery returns the most recently saved query, or "" on first run.
func (m *Manager) LastQuery() (string, error) {
	return loadQuery(m.db)
}

// SaveQuery records query once typing pauses. Calls that arrive while a
// write is pending replace it, so a burst of keystrokes is one write.
func (m *Manager) SaveQuery(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}

	m.query, m.dirty = query, true
	if m.timer == nil {
		m.timer = time.AfterFunc(queryDelay, m.flushLogged)
	} else {
		m.timer.Reset(queryDelay)
	}
}

// Close writes a pending query. It does not close the database.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()
	return m.flush()
}

func (m *Manager) flushLogged() {
	if err := m.flush(); err != nil {
		m.logger.Error("failed to save search query", "error", err)
	}
}

func (m *Manager) flush() error {
	m.mu.Lock()
	query, dirty := m.query, m.dirty
	m.dirty = false
	m.mu.Unlock()

	if !dirty {
		return nil
	}
	return storeQuery(m.db, query)
}
