package lending

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Slot is the durable key-value storage backing the catalog. It holds a
// handful of string-valued keys in a single SQLite table; the catalog itself
// lives under one key as a JSON array.
type Slot struct {
	db *sql.DB

	putStmt *sql.Stmt
}

// OpenSlot opens (or creates) the SQLite database at dbPath and ensures the
// slot table exists.
func OpenSlot(dbPath string) (*Slot, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (key TEXT PRIMARY KEY, value TEXT NOT NULL);`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}

	slot := &Slot{db: db}
	if slot.putStmt, err = db.Prepare(`INSERT INTO slots(key,value) VALUES(?,?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value`); err != nil {
		db.Close()
		return nil, err
	}
	return slot, nil
}

// Close releases the prepared statement and closes the DB.
func (s *Slot) Close() error {
	if s.putStmt != nil {
		s.putStmt.Close()
	}
	return s.db.Close()
}

// Get returns the value stored under key. The second return reports whether
// the key was present at all.
func (s *Slot) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key=?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Put writes value under key, replacing any previous value.
func (s *Slot) Put(key, value string) error {
	_, err := s.putStmt.Exec(key, value)
	return err
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Slot) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM slots WHERE key=?`, key)
	return err
}
