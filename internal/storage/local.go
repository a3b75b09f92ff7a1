package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Compile-time interface implementation check.
var _ Storage = (*LocalStorage)(nil)

// LocalStorage archives files by copying them into a directory tree.
type LocalStorage struct {
	root string
}

// NewLocalStorage creates a LocalStorage rooted at root, creating the
// directory if it does not exist.
func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// Root returns the archive root directory.
func (s *LocalStorage) Root() string {
	return s.root
}

// Archive copies the file at path to <root>/<key>.
func (s *LocalStorage) Archive(ctx context.Context, key, path string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	src, err := os.Open(path) // #nosec G304 -- path is produced by the splitter, not user input
	if err != nil {
		return fmt.Errorf("open archive source: %w", err)
	}
	defer func() { _ = src.Close() }()

	dstPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0750); err != nil {
		return fmt.Errorf("create archive subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath) // #nosec G304 -- destination stays under the archive root
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dstPath)
		return fmt.Errorf("write archive file: %w", err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("close archive file: %w", err)
	}
	return nil
}
