package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/clinlab/demolabel/internal/logging"
)

// SQLiteStore keeps clients in a SQLite database, for sites whose client
// list has outgrown hand-editing a JSON file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS clients (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		alias       TEXT NOT NULL DEFAULT '',
		order_codes TEXT NOT NULL DEFAULT '',
		extra       TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create clients table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get implements ClientStore.
func (s *SQLiteStore) Get(id string) (ClientRecord, error) {
	row := s.db.QueryRow(`SELECT name, alias, order_codes, extra FROM clients WHERE id = ?`, id)

	var rec ClientRecord
	var extra string
	if err := row.Scan(&rec.Name, &rec.Alias, &rec.OrderCodes, &extra); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ClientRecord{}, ErrNotFound
		}
		return ClientRecord{}, fmt.Errorf("select client: %w", err)
	}
	if err := decodeExtra(extra, &rec); err != nil {
		return ClientRecord{}, err
	}
	return rec, nil
}

// Put implements ClientStore. The extra column of an existing row is
// left alone.
func (s *SQLiteStore) Put(id string, rec ClientRecord) error {
	extra, err := encodeExtra(rec)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`UPDATE clients SET name = ?, alias = ?, order_codes = ? WHERE id = ?`,
		rec.Name, rec.Alias, rec.OrderCodes, id)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		logging.LogClientSaved(id, false)
		return nil
	}

	if _, err := s.db.Exec(`INSERT INTO clients (id, name, alias, order_codes, extra) VALUES (?, ?, ?, ?, ?)`,
		id, rec.Name, rec.Alias, rec.OrderCodes, extra); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	logging.LogClientSaved(id, true)
	return nil
}

// All implements ClientStore.
func (s *SQLiteStore) All() (map[string]ClientRecord, error) {
	rows, err := s.db.Query(`SELECT id, name, alias, order_codes, extra FROM clients`)
	if err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make(map[string]ClientRecord)
	for rows.Next() {
		var id, extra string
		var rec ClientRecord
		if err := rows.Scan(&id, &rec.Name, &rec.Alias, &rec.OrderCodes, &extra); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if err := decodeExtra(extra, &rec); err != nil {
			return nil, err
		}
		records[id] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return records, nil
}

func encodeExtra(rec ClientRecord) (string, error) {
	if len(rec.extra) == 0 {
		return "", nil
	}
	data, err := json.Marshal(rec.extra)
	if err != nil {
		return "", fmt.Errorf("encode extra fields: %w", err)
	}
	return string(data), nil
}

func decodeExtra(extra string, rec *ClientRecord) error {
	if extra == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(extra), &rec.extra); err != nil {
		return fmt.Errorf("decode extra fields: %w", err)
	}
	return nil
}
