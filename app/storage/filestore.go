// Package storage abstracts where uploaded post images live. Object names
// are random so uploads never collide or overwrite each other.
package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore saves an uploaded file and returns the URL it will be served
// from.
type FileStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// objectName generates a unique storage name preserving the upload's
// extension.
func objectName(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}
