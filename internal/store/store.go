package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database holding saved links and settings.
type Store struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	s := &Store{readDB: readDB, writeDB: writeDB}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS links (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			url       TEXT NOT NULL,
			title     TEXT NOT NULL,
			summary   TEXT NOT NULL DEFAULT '',
			timestamp TEXT NOT NULL,
			tags      TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_links_url ON links(url);

		CREATE TABLE IF NOT EXISTS settings (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	var errs []error
	if s.readDB != nil {
		errs = append(errs, s.readDB.Close())
	}
	if s.writeDB != nil {
		errs = append(errs, s.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// PutSetting creates or overwrites a setting.
func (s *Store) PutSetting(key, value string) error {
	_, err := s.writeDB.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("storing setting %q: %w", key, err)
	}
	return nil
}

// GetSetting returns the stored value and whether the key exists.
func (s *Store) GetSetting(key string) (string, bool, error) {
	var value string
	err := s.readDB.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, true, nil
}

// AddLink persists a link, assigning its id and creation timestamp.
func (s *Store) AddLink(l Link) (int64, error) {
	res, err := s.writeDB.Exec(`
		INSERT INTO links (url, title, summary, timestamp, tags)
		VALUES (?, ?, ?, ?, ?)
	`, l.URL, l.Title, l.Summary, now(), joinTags(l.Tags))
	if err != nil {
		return 0, fmt.Errorf("inserting link: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

// AddLinkIfAbsent inserts the link only if no record with the same exact URL
// exists. The check and insert happen in one statement, so two concurrent
// saves of the same URL cannot both slip through. Returns the new id and
// whether a row was inserted.
func (s *Store) AddLinkIfAbsent(l Link) (int64, bool, error) {
	res, err := s.writeDB.Exec(`
		INSERT INTO links (url, title, summary, timestamp, tags)
		SELECT ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM links WHERE url = ?)
	`, l.URL, l.Title, l.Summary, now(), joinTags(l.Tags), l.URL)
	if err != nil {
		return 0, false, fmt.Errorf("inserting link: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, true, nil
}

// ListLinks returns all saved links, newest first by insertion order.
func (s *Store) ListLinks() ([]Link, error) {
	rows, err := s.readDB.Query(`
		SELECT id, url, title, summary, timestamp, tags
		FROM links ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var l Link
		var tags string
		if err := rows.Scan(&l.ID, &l.URL, &l.Title, &l.Summary, &l.Timestamp, &tags); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		l.Tags = splitTags(tags)
		links = append(links, l)
	}
	return links, rows.Err()
}

// DeleteLink removes the link with the given id. Deleting an id that does
// not exist is not an error.
func (s *Store) DeleteLink(id int64) error {
	if _, err := s.writeDB.Exec("DELETE FROM links WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting link %d: %w", id, err)
	}
	return nil
}

// FindByURL returns the first link whose URL exactly equals the argument,
// or nil if none matches. No normalization: "http://x" and "http://x/" are
// distinct URLs.
func (s *Store) FindByURL(url string) (*Link, error) {
	var l Link
	var tags string
	err := s.readDB.QueryRow(`
		SELECT id, url, title, summary, timestamp, tags
		FROM links WHERE url = ? ORDER BY id ASC LIMIT 1
	`, url).Scan(&l.ID, &l.URL, &l.Title, &l.Summary, &l.Timestamp, &tags)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up url: %w", err)
	}
	l.Tags = splitTags(tags)
	return &l, nil
}

// Stats returns the number of saved links and the database file size.
func (s *Store) Stats(dbPath string) (count int64, size int64, err error) {
	if err := s.readDB.QueryRow("SELECT COUNT(*) FROM links").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting links: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("reading db file: %w", err)
	}
	return count, info.Size(), nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
