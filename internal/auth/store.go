package auth

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes key material (credentials and tokens) by path.
type Store interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
}

// FileStore is a Store backed by the local filesystem. Files are written
// readable by the owner only.
type FileStore struct{}

func (FileStore) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (FileStore) Write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return os.WriteFile(path, data, 0600)
}
