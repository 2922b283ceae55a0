package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps uploads in a local directory, served under baseURL. It is
// the development and test backend.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore creates the media directory if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: baseURL}, nil
}

// Save writes the file under a fresh object name and returns its URL.
func (s *DiskStore) Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	name := objectName(filename)
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
