package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileStore keeps all baselines in a single JSON file, rewritten on every Save.
type FileStore struct {
	mu       sync.Mutex
	entries  map[string]Entry
	filePath string
}

// NewFileStore loads filePath, starting empty if the file doesn't exist.
func NewFileStore(filePath string) (*FileStore, error) {
	entries, err := loadEntries(filePath)
	if err != nil {
		return nil, fmt.Errorf("load baselines %s: %w", filePath, err)
	}
	return &FileStore{entries: entries, filePath: filePath}, nil
}

func loadEntries(filePath string) (map[string]Entry, error) {
	entries := make(map[string]Entry)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FileStore) Load(_ context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return e, ok, nil
}

func (s *FileStore) Save(_ context.Context, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return s.flush()
}

// Keys lists, sorted, the accounts with a stored baseline.
func (s *FileStore) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *FileStore) Close() error { return nil }

// flush writes via a temp file so a crash never leaves half a document.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}
