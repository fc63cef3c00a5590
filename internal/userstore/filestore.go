package userstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"movie-trends-dashboard/internal/models"
)

// FileStore keeps all user records in one JSON file. Reads load the whole
// file; writes serialize the whole map back. Saves go through a temp file
// and rename so a crash leaves either the old or the new content, never a
// truncated file. The mutex serializes callers within this process only;
// a second process writing the same file still races last-write-wins.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens (and seeds, if absent) the JSON store at path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		seed := map[string]models.UserRecord{"admin": seedAdmin()}
		if err := s.write(seed); err != nil {
			return nil, fmt.Errorf("failed to seed user store: %w", err)
		}
		slog.Info("seeded user store", "path", path)
	}
	return s, nil
}

// Load reads every record, back-filling fields missing from older files.
func (s *FileStore) Load() (map[string]models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Save overwrites the entire store.
func (s *FileStore) Save(records map[string]models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(records)
}

// Get returns one record or ErrNotFound.
func (s *FileStore) Get(username string) (models.UserRecord, error) {
	records, err := s.Load()
	if err != nil {
		return models.UserRecord{}, err
	}
	record, ok := records[username]
	if !ok {
		return models.UserRecord{}, ErrNotFound
	}
	return record, nil
}

// Put creates or replaces one record with a full load-modify-save cycle.
func (s *FileStore) Put(username string, record models.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.read()
	if err != nil {
		return err
	}
	records[username] = record
	return s.write(records)
}

// Delete removes one record; absent usernames are a no-op.
func (s *FileStore) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.read()
	if err != nil {
		return err
	}
	delete(records, username)
	return s.write(records)
}

func (s *FileStore) read() (map[string]models.UserRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]models.UserRecord{"admin": seedAdmin()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user store: %w", err)
	}
	var records map[string]models.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode user store: %w", err)
	}
	for username, record := range records {
		records[username] = migrate(record)
	}
	return records, nil
}

// write replaces the store file atomically: write to {path}.tmp, sync,
// rename over the target.
func (s *FileStore) write(records map[string]models.UserRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write temp store file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync temp store file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
