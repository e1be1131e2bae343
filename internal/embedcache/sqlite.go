package embedcache

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

const createEmbeddingsTable = `
CREATE TABLE IF NOT EXISTS embeddings (
	key        TEXT PRIMARY KEY,
	model      TEXT NOT NULL,
	vector     TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// SQLite is the database cache backend. It stores the same
// content-addressed mapping as the disk backend in a single file, which
// suits deployments where one cache file is easier to manage than
// thousands.
type SQLite struct {
	db    *sql.DB
	model string
}

// NewSQLite opens (creating if needed) a sqlite-backed cache at dbPath.
func NewSQLite(dbPath, model string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	// SQLite benefits from a single writer; reads share the connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec(createEmbeddingsTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create embeddings table: %w", err)
	}

	return &SQLite{db: db, model: model}, nil
}

// Get reads the vector for text. Any query or decode failure is a miss.
func (s *SQLite) Get(text string) ([]float32, bool) {
	var encoded string
	err := s.db.QueryRow("SELECT vector FROM embeddings WHERE key = ?", Key(s.model, text)).Scan(&encoded)
	if err != nil {
		return nil, false
	}
	var vector []float32
	if err := json.Unmarshal([]byte(encoded), &vector); err != nil {
		return nil, false
	}
	return vector, true
}

// Put stores the vector for text. The cache is append-only: an existing
// entry is left untouched since the same text and model always produce
// the same vector. Failures are dropped.
func (s *SQLite) Put(text string, vector []float32) {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(
		"INSERT OR IGNORE INTO embeddings (key, model, vector) VALUES (?, ?, ?)",
		Key(s.model, text), s.model, string(encoded),
	)
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
