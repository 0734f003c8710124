package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore persists hash/diagnostics/timestamp metadata in a sqlite
// database, surviving process restarts. The parsed Core module is never
// persisted here (see Store's doc comment); a row read back from sqlite
// always has a nil CachedDocument.Module.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (creating if absent) a sqlite database at path
// and ensures its schema exists.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite cache %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS documents (
	path TEXT PRIMARY KEY,
	hash TEXT NOT NULL,
	diagnostics TEXT NOT NULL,
	cached_at INTEGER NOT NULL,
	last_checked INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_hash ON documents(hash);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite cache schema: %w", err)
	}
	return &SqliteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) scanRow(row *sql.Row) (*CachedDocument, bool) {
	var path, hash, diagJSON string
	var cachedAt, lastChecked int64
	if err := row.Scan(&path, &hash, &diagJSON, &cachedAt, &lastChecked); err != nil {
		return nil, false
	}
	doc := &CachedDocument{Path: path, Hash: hash, CachedAt: time.Unix(0, cachedAt), LastChecked: time.Unix(0, lastChecked)}
	_ = json.Unmarshal([]byte(diagJSON), &doc.Diagnostics)
	return doc, true
}

func (s *SqliteStore) Get(path string) (*CachedDocument, bool) {
	row := s.db.QueryRow(`SELECT path, hash, diagnostics, cached_at, last_checked FROM documents WHERE path = ?`, path)
	return s.scanRow(row)
}

func (s *SqliteStore) GetByHash(hash string) (*CachedDocument, bool) {
	row := s.db.QueryRow(`SELECT path, hash, diagnostics, cached_at, last_checked FROM documents WHERE hash = ? LIMIT 1`, hash)
	return s.scanRow(row)
}

func (s *SqliteStore) Set(path string, doc *CachedDocument) {
	diagJSON, err := json.Marshal(doc.Diagnostics)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(`
INSERT INTO documents (path, hash, diagnostics, cached_at, last_checked)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, diagnostics = excluded.diagnostics, last_checked = excluded.last_checked
`, path, doc.Hash, string(diagJSON), doc.CachedAt.UnixNano(), doc.LastChecked.UnixNano())
}

func (s *SqliteStore) Invalidate(path string) {
	_, _ = s.db.Exec(`DELETE FROM documents WHERE path = ?`, path)
}

func (s *SqliteStore) InvalidateAll() {
	_, _ = s.db.Exec(`DELETE FROM documents`)
}

func (s *SqliteStore) Size() int {
	var n int
	_ = s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n)
	return n
}

func (s *SqliteStore) Prune(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge).UnixNano()
	res, err := s.db.Exec(`DELETE FROM documents WHERE last_checked < ?`, cutoff)
	if err != nil {
		return 0
	}
	n, _ := res.RowsAffected()
	return int(n)
}
