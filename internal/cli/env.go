// Package cli wires flags, settings, and dependencies into the pipeline.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/sethvargo/go-envconfig"

	"github.com/agolikov/silence-split/internal/config"
	"github.com/agolikov/silence-split/internal/ffmpeg"
	"github.com/agolikov/silence-split/internal/logging"
	"github.com/agolikov/silence-split/internal/storage"
)

// Env holds injectable dependencies for the command. This is the central
// injection point for testing the command in isolation.
//
// All fields have production defaults via DefaultEnv(). Tests override
// individual fields.
type Env struct {
	Stderr   io.Writer
	Lookuper envconfig.Lookuper
	Stat     func(name string) (os.FileInfo, error)

	Resolve    func() (ffmpeg.Paths, error)
	NewEngine  func(paths ffmpeg.Paths) (ffmpeg.Engine, error)
	NewLogger  func(opts logging.Options) (*slog.Logger, func() error, error)
	NewArchive func(ctx context.Context, settings *config.Settings) (storage.Storage, error)
}

// DefaultEnv creates an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stderr:   os.Stderr,
		Lookuper: envconfig.OsLookuper(),
		Stat:     os.Stat,
		Resolve:  ffmpeg.ResolvePaths,
		NewEngine: func(paths ffmpeg.Paths) (ffmpeg.Engine, error) {
			return ffmpeg.NewTool(paths)
		},
		NewLogger:  logging.New,
		NewArchive: newArchive,
	}
}

// newArchive builds the archive storage selected by the settings: S3 when
// bucket and region are set, a local directory when an archive dir is set,
// nil (archiving disabled) otherwise.
func newArchive(ctx context.Context, settings *config.Settings) (storage.Storage, error) {
	if settings.S3Enabled() {
		return storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          settings.S3Bucket,
			Region:          settings.S3Region,
			Endpoint:        settings.S3Endpoint,
			AccessKeyID:     settings.AWSAccessKeyID,
			SecretAccessKey: settings.AWSSecretAccessKey,
		})
	}
	if settings.ArchiveDir != "" {
		return storage.NewLocalStorage(settings.ArchiveDir)
	}
	return nil, nil
}
