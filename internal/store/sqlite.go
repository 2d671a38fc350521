package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/energiflow/internal/model"
)

// storageKey is the fixed slot the AppData document is stored under.
const storageKey = "energiflow_data"

// SQLiteStore implements DataStore on a local SQLite database holding
// a single kv table. The document value is the canonical AppData JSON,
// so values written by older builds keep loading unchanged.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations. Parent
// directories are created as needed; ":memory:" is supported for tests.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Load reads the stored document. A missing slot, unreadable row, or
// corrupt document falls back to a fresh default; the failure is logged
// and never surfaced to the caller.
func (s *SQLiteStore) Load() *model.AppData {
	var raw string
	err := s.db.Get(&raw, "SELECT value FROM kv WHERE key = ?", storageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultAppData()
	}
	if err != nil {
		log.Printf("loading %s: %v", storageKey, err)
		return model.DefaultAppData()
	}

	var data model.AppData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		log.Printf("decoding %s: %v", storageKey, err)
		return model.DefaultAppData()
	}
	if data.Tasks == nil {
		data.Tasks = []model.Task{}
	}
	return &data
}

// Save writes the document into the slot. Best-effort: failures are
// logged and swallowed, and the in-memory document stays authoritative.
func (s *SQLiteStore) Save(data *model.AppData) {
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("encoding %s: %v", storageKey, err)
		return
	}

	_, err = s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		storageKey, string(raw),
	)
	if err != nil {
		log.Printf("saving %s: %v", storageKey, err)
	}
}

// Clear removes the stored document.
func (s *SQLiteStore) Clear() {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", storageKey); err != nil {
		log.Printf("clearing %s: %v", storageKey, err)
	}
}

// Export returns a pretty-printed serialization of the currently
// stored document, suitable for a user-facing download.
func (s *SQLiteStore) Export() (string, error) {
	data := s.Load()
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}
	return string(raw), nil
}
