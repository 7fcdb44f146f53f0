// ABOUTME: SQLite snapshot of extracted track tags for querying outside the tool
// ABOUTME: Each export replaces the previous snapshot inside one transaction

// Package store writes extracted tags into a SQLite database.
//
// The snapshot is derived data: every Save drops the previous rows, so the database always
// mirrors the last extraction.
package store

import (
	"database/sql"
	"fmt"
	"maps"
	"slices"

	_ "github.com/mattn/go-sqlite3"

	"autoplaylist/playlist"
)

const schema = `
CREATE TABLE IF NOT EXISTS tracks (
	path   TEXT PRIMARY KEY,
	artist TEXT NOT NULL DEFAULT '',
	title  TEXT NOT NULL DEFAULT '',
	album  TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS track_tags (
	path  TEXT NOT NULL REFERENCES tracks(path),
	key   TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (path, key)
);
CREATE INDEX IF NOT EXISTS idx_track_tags_key_value ON track_tags(key, value);
`

// Store holds the snapshot database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
// The path can be ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the snapshot with tracks
func (s *Store) Save(tracks []*playlist.Track) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, q := range []string{"DELETE FROM track_tags", "DELETE FROM tracks"} {
		if _, err := tx.Exec(q); err != nil {
			return fmt.Errorf("failed to clear snapshot: %w", err)
		}
	}

	trackStmt, err := tx.Prepare(`INSERT INTO tracks (path, artist, title, album) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer trackStmt.Close()

	tagStmt, err := tx.Prepare(`INSERT INTO track_tags (path, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare tag insert: %w", err)
	}
	defer tagStmt.Close()

	for _, t := range tracks {
		if _, err := trackStmt.Exec(t.Path, t.Artist, t.Title, t.Album); err != nil {
			return fmt.Errorf("failed to insert track %s: %w", t.Path, err)
		}

		for _, k := range slices.Sorted(maps.Keys(t.Tags)) {
			if _, err := tagStmt.Exec(t.Path, k, t.Tags[k]); err != nil {
				return fmt.Errorf("failed to insert tag %s of %s: %w", k, t.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

// PathsWith returns the paths of tracks tagged key=value, ordered by path
func (s *Store) PathsWith(key, value string) ([]string, error) {
	rows, err := s.db.Query(`SELECT path FROM track_tags WHERE key = ? AND value = ? ORDER BY path`, key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var paths []string

	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}

		paths = append(paths, p)
	}

	return paths, rows.Err()
}

// Count returns the number of tracks in the snapshot
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM tracks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}

	return n, nil
}
