// Package storage provides archive destinations for finished split files.
// It defines the Storage interface and implementations for a local archive
// directory and S3.
package storage

import "context"

// Storage archives finished output files under a key.
type Storage interface {
	// Archive copies the file at path to the archive under key.
	Archive(ctx context.Context, key, path string) error
}
