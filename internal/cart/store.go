package cart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is a local key-value store for client-side state, standing in for
// browser localStorage. Values are opaque bytes; serialization happens at
// the boundary in Load and Save.
type Store interface {
	// Get returns the value for key, reporting whether it exists.
	Get(key string) ([]byte, bool, error)

	// Set stores the value for key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes the value for key. Deleting a missing key is not an error.
	Delete(key string) error
}

// fileStore implements Store with one JSON file per key under a directory.
type fileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get returns the value for key, reporting whether it exists.
func (s *fileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores the value for key, replacing any previous value.
func (s *fileStore) Set(key string, value []byte) error {
	if err := os.WriteFile(s.path(key), value, 0o644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes the value for key.
func (s *fileStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
