// Package storage keeps unlock markers, game facts and level results in a
// SQLite database through the pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/milk9111/lol/config"
)

// Store is a SQLite-backed lol.Persistence.
type Store struct {
	db *sql.DB
}

// Result summarizes the recorded attempts of one level.
type Result struct {
	Level    int
	Wins     int
	Losses   int
	LastPlay time.Time
}

// Open creates or opens the database at path, creating parent directories
// and running migrations.
func Open(path string) (*Store, error) {
	path, err := config.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS persistent (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level INTEGER NOT NULL,
			win INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_level_results_level ON level_results(level);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SavePersistent stores value under key.
func (s *Store) SavePersistent(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO persistent (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: save %s: %w", key, err)
	}
	return nil
}

// ReadPersistent returns the value under key, or def when it is missing or
// unreadable.
func (s *Store) ReadPersistent(key string, def int) int {
	var v int
	err := s.db.QueryRow("SELECT value FROM persistent WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return def
	}
	if err != nil {
		log.Error("storage: read", "key", key, "err", err)
		return def
	}
	return v
}

// Reset deletes key. An empty key deletes every stored value and result.
func (s *Store) Reset(key string) error {
	if key != "" {
		if _, err := s.db.Exec("DELETE FROM persistent WHERE key = ?", key); err != nil {
			return fmt.Errorf("storage: reset %s: %w", key, err)
		}
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM persistent; DELETE FROM level_results;"); err != nil {
		return fmt.Errorf("storage: reset all: %w", err)
	}
	return nil
}

// Keys returns every stored key in order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM persistent ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("storage: scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// RecordResult appends the outcome of one attempt at level.
func (s *Store) RecordResult(level int, win bool) error {
	w := 0
	if win {
		w = 1
	}
	if _, err := s.db.Exec("INSERT INTO level_results (level, win) VALUES (?, ?)", level, w); err != nil {
		return fmt.Errorf("storage: record result: %w", err)
	}
	return nil
}

// Results summarizes every level with at least one recorded attempt.
func (s *Store) Results() ([]Result, error) {
	rows, err := s.db.Query(`
		SELECT level,
		       SUM(CASE WHEN win = 1 THEN 1 ELSE 0 END),
		       SUM(CASE WHEN win = 0 THEN 1 ELSE 0 END),
		       MAX(created_at)
		FROM level_results
		GROUP BY level
		ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("storage: query results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var last string
		if err := rows.Scan(&r.Level, &r.Wins, &r.Losses, &last); err != nil {
			return nil, fmt.Errorf("storage: scan result: %w", err)
		}
		r.LastPlay = parseTime(last)
		out = append(out, r)
	}
	return out, rows.Err()
}

func parseTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
