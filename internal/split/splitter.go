package split

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agolikov/silence-split/internal/ffmpeg"
	"github.com/agolikov/silence-split/internal/format"
	"github.com/agolikov/silence-split/internal/storage"
)

// Splitter executes a span plan against the source file: one audio range in
// the source's own codec and container plus one JPEG thumbnail per span.
// Existing output files are never re-emitted.
type Splitter struct {
	engine  ffmpeg.Engine
	logger  *slog.Logger
	archive storage.Storage // nil disables archiving

	statter fileStatter
}

// SplitterOption configures a Splitter.
type SplitterOption func(*Splitter)

// WithArchive sets the archive storage for finished outputs.
func WithArchive(s storage.Storage) SplitterOption {
	return func(sp *Splitter) {
		sp.archive = s
	}
}

// WithFileStatter sets the file statter (used by tests).
func WithFileStatter(s fileStatter) SplitterOption {
	return func(sp *Splitter) {
		sp.statter = s
	}
}

// NewSplitter creates a Splitter.
func NewSplitter(engine ffmpeg.Engine, logger *slog.Logger, opts ...SplitterOption) *Splitter {
	sp := &Splitter{
		engine:  engine,
		logger:  logger,
		statter: osFileStatter{},
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// Run emits every planned span in order. Each span is completed (audio,
// thumbnail, optional archive upload) before the next is considered.
func (sp *Splitter) Run(ctx context.Context, src, outputDir string, spans []Span, info ffmpeg.MediaInfo) error {
	for _, span := range spans {
		if span.Skipped {
			sp.logger.Info("audio span is too short, skipping",
				"number", span.Number,
				"duration", format.Duration(span.Duration()))
			continue
		}
		if err := sp.emit(ctx, src, outputDir, span, info); err != nil {
			return err
		}
	}
	return nil
}

// emit writes one span's audio file and thumbnail, skipping whichever
// already exists on disk.
func (sp *Splitter) emit(ctx context.Context, src, outputDir string, span Span, info ffmpeg.MediaInfo) error {
	audioPath := filepath.Join(outputDir, fmt.Sprintf("split_%d.%s", span.Number, info.Container))
	imagePath := filepath.Join(outputDir, fmt.Sprintf("split_%d.jpg", span.Number))

	if _, err := sp.statter.Stat(audioPath); err == nil {
		sp.logger.Info("split audio already exists, skipping", "path", audioPath)
	} else {
		sp.logger.Info("creating split audio",
			"path", audioPath,
			"start", format.Duration(span.Start),
			"end", format.Duration(span.End))
		if span.Final {
			err = sp.engine.ExtractTail(ctx, src, audioPath, span.Start, info.AudioCodec, info.Container)
		} else {
			err = sp.engine.ExtractRange(ctx, src, audioPath, span.Start, span.End, info.AudioCodec, info.Container)
		}
		if err != nil {
			return err
		}
		sp.logSize(audioPath)
		if err := sp.upload(ctx, outputDir, audioPath); err != nil {
			return err
		}
	}

	if _, err := sp.statter.Stat(imagePath); err == nil {
		sp.logger.Info("cover image already exists, skipping", "path", imagePath)
	} else {
		sp.logger.Info("extracting cover image",
			"path", imagePath,
			"at", format.Duration(span.Midpoint()))
		if err := sp.engine.Snapshot(ctx, src, imagePath, span.Midpoint()); err != nil {
			return err
		}
		if err := sp.upload(ctx, outputDir, imagePath); err != nil {
			return err
		}
	}

	return nil
}

// upload archives a finished output file when archiving is enabled.
func (sp *Splitter) upload(ctx context.Context, outputDir, path string) error {
	if sp.archive == nil {
		return nil
	}
	key := filepath.Base(outputDir) + "/" + filepath.Base(path)
	if err := sp.archive.Archive(ctx, key, path); err != nil {
		return err
	}
	sp.logger.Info("archived output", "key", key)
	return nil
}

// logSize logs the size of an emitted file; stat failures are ignored since
// the file was just written by the engine.
func (sp *Splitter) logSize(path string) {
	if fi, err := sp.statter.Stat(path); err == nil {
		sp.logger.Info("split audio written", "path", path, "size", format.Size(fi.Size()))
	}
}

// fileStatter retrieves file information.
type fileStatter interface {
	Stat(name string) (os.FileInfo, error)
}

// osFileStatter implements fileStatter using os.Stat.
type osFileStatter struct{}

func (osFileStatter) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}
