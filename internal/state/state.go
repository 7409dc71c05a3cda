package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "cadence"
	dbFileName   = "cadence.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db     *sql.DB
	logger logrus.FieldLogger

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]Session
}

// Open opens the database in the XDG data directory.
func Open(logger logrus.FieldLogger) (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath, logger)
}

// OpenPath opens the database at path, creating it if needed.
func OpenPath(dbPath string, logger logrus.FieldLogger) (*Manager, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Manager{
		db:      db,
		logger:  logger.WithField("db", dbPath),
		pending: make(map[string]Session),
	}, nil
}

// Close flushes pending saves and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.flushLocked()
	m.saveMu.Unlock()

	return m.db.Close()
}

func (m *Manager) GetSession(kind string) (*Session, error) {
	m.saveMu.Lock()
	if s, ok := m.pending[kind]; ok {
		m.saveMu.Unlock()
		return &s, nil
	}
	m.saveMu.Unlock()
	return getSession(m.db, kind)
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

// SaveSession records s. Writes are debounced; the latest session per kind
// wins.
func (m *Manager) SaveSession(s Session) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[s.Kind] = s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		defer m.saveMu.Unlock()
		m.flushLocked()
	})
}

func (m *Manager) flushLocked() {
	for kind, s := range m.pending {
		if err := saveSession(m.db, s); err != nil {
			m.logger.WithError(err).WithField("kind", kind).Warn("saving session failed")
		}
		delete(m.pending, kind)
	}
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
