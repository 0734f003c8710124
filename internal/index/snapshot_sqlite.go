package index

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SqliteSnapshot persists the workspace index in a sqlite database, one
// row per file, as an alternative to the JSON snapshot for large
// workspaces where rewriting a single JSON file on every update is
// wasteful.
type SqliteSnapshot struct {
	db *sql.DB
}

// OpenSqliteSnapshot opens (creating if absent) a sqlite database at
// path and ensures its schema exists.
func OpenSqliteSnapshot(path string) (*SqliteSnapshot, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite index snapshot %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS index_files (
	path TEXT PRIMARY KEY,
	module_name TEXT NOT NULL,
	hash TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	symbols TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS index_files_module ON index_files(module_name);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite index snapshot schema: %w", err)
	}
	return &SqliteSnapshot{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SqliteSnapshot) Close() error {
	return s.db.Close()
}

// Save writes every current record in idx to the database, replacing
// any prior row for the same path.
func (s *SqliteSnapshot) Save(idx *Index) error {
	idx.mu.RLock()
	records := make([]*IndexRecord, 0, len(idx.byPath))
	for _, rec := range idx.byPath {
		records = append(records, rec)
	}
	idx.mu.RUnlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, rec := range records {
		sr := toSnapshotRecord(rec)
		symJSON, err := json.Marshal(sr.Symbols)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := tx.Exec(`
INSERT INTO index_files (path, module_name, hash, updated_at, symbols)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET module_name = excluded.module_name, hash = excluded.hash, updated_at = excluded.updated_at, symbols = excluded.symbols
`, rec.Path, rec.ModuleName, rec.Hash, rec.UpdatedAt.UnixNano(), string(symJSON)); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Load reads every row back into a fresh in-memory Index. A malformed
// database is treated as empty, matching the JSON snapshot's "absent or
// malformed is empty" contract.
func Load(path string) (*Index, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return New(), nil
	}
	defer db.Close()

	rows, err := db.Query(`SELECT path, module_name, hash, updated_at, symbols FROM index_files`)
	if err != nil {
		return New(), nil
	}
	defer rows.Close()

	idx := New()
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for rows.Next() {
		var path, moduleName, hash, symJSON string
		var updatedAt int64
		if err := rows.Scan(&path, &moduleName, &hash, &updatedAt, &symJSON); err != nil {
			continue
		}
		var syms []snapshotSymbol
		if err := json.Unmarshal([]byte(symJSON), &syms); err != nil {
			continue
		}
		sr := snapshotRecord{Path: path, ModuleName: moduleName, Hash: hash, UpdatedAt: time.Unix(0, updatedAt), Symbols: syms}
		rec := fromSnapshotRecord(path, sr)
		idx.byPath[path] = rec
		if rec.ModuleName != "" {
			idx.byModule[rec.ModuleName] = append(idx.byModule[rec.ModuleName], path)
		}
		for _, sym := range rec.Symbols {
			idx.byName[sym.Name] = append(idx.byName[sym.Name], sym)
			idx.pathOfSym[sym.ID] = path
		}
	}
	return idx, nil
}
