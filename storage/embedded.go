package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"grantrates-backend/content"
)

// EmbeddedStorage serves the content compiled into the binary
type EmbeddedStorage struct {
	fsys fs.FS
}

// NewEmbeddedStorage returns storage backed by the bundled content
func NewEmbeddedStorage() *EmbeddedStorage {
	return &EmbeddedStorage{fsys: content.FS}
}

// NewFSStorage wraps an arbitrary file system, mainly for tests
func NewFSStorage(fsys fs.FS) *EmbeddedStorage {
	return &EmbeddedStorage{fsys: fsys}
}

// Download opens a bundled file
func (s *EmbeddedStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	p, err := cleanPath(storagePath)
	if err != nil {
		return nil, err
	}
	f, err := s.fsys.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to open bundled file: %w", err)
	}
	return f, nil
}
