// Package store provides a SQLite-backed history of shell statements.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// History persists statements entered in the interactive shell.
type History struct {
	db    *sql.DB
	limit int
}

// Open opens or creates the history database at the given path. At most
// limit entries are kept; limit < 1 keeps everything.
func Open(dbPath string, limit int) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db, limit: limit}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Append records a statement. Blank lines and immediate repeats of the
// most recent entry are skipped.
func (h *History) Append(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	tx, err := h.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var last string
	err = tx.QueryRow("SELECT line FROM history ORDER BY id DESC LIMIT 1").Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	case last == line:
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec("INSERT INTO history (line, created_at) VALUES (?, ?)", line, now); err != nil {
		return err
	}

	if h.limit > 0 {
		// Trim everything older than the newest limit entries.
		_, err = tx.Exec(`DELETE FROM history WHERE id <= (
			SELECT id FROM history ORDER BY id DESC LIMIT 1 OFFSET ?)`, h.limit)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Recent returns up to n entries, oldest first. n < 1 returns everything.
func (h *History) Recent(n int) ([]string, error) {
	if n < 1 {
		n = -1
	}
	rows, err := h.db.Query(`SELECT line FROM (
		SELECT id, line FROM history ORDER BY id DESC LIMIT ?) ORDER BY id`, n)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Count returns the number of stored entries.
func (h *History) Count() (int, error) {
	var n int
	err := h.db.QueryRow("SELECT COUNT(*) FROM history").Scan(&n)
	return n, err
}
