package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/clinlab/demolabel/internal/logging"
)

// FileStore keeps clients in a single JSON object on disk. The whole file is
// read before every lookup and rewritten after every save, so edits made
// with a text editor between operations are picked up.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path. The file need not exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements ClientStore.
func (s *FileStore) Get(id string) (ClientRecord, error) {
	records, err := s.read()
	if err != nil {
		return ClientRecord{}, err
	}
	rec, ok := records[id]
	if !ok {
		return ClientRecord{}, ErrNotFound
	}
	return rec, nil
}

// Put implements ClientStore.
func (s *FileStore) Put(id string, rec ClientRecord) error {
	records, err := s.read()
	if err != nil {
		return err
	}

	existing, found := records[id]
	records[id] = existing.merge(rec)

	if err := s.write(records); err != nil {
		return err
	}
	logging.LogClientSaved(id, !found)
	return nil
}

// All implements ClientStore.
func (s *FileStore) All() (map[string]ClientRecord, error) {
	return s.read()
}

// read loads the file. A missing file is an empty store.
func (s *FileStore) read() (map[string]ClientRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]ClientRecord), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read clients file: %w", err)
	}

	records := make(map[string]ClientRecord)
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse clients file %s: %w", s.path, err)
	}
	// A literal null decodes to a nil map.
	if records == nil {
		records = make(map[string]ClientRecord)
	}
	return records, nil
}

// write replaces the file atomically, pretty-printed with four-space indent.
func (s *FileStore) write(records map[string]ClientRecord) error {
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal clients: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create clients directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary clients file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save clients file: %w", err)
	}
	return nil
}
