// Package pipeline sequences the three processing stages: chunk the source
// into segments, detect silences per segment, split the source at the
// detected silences. Stages communicate only through files in the output
// directory, so every stage is independently re-runnable.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/agolikov/silence-split/internal/chunk"
	"github.com/agolikov/silence-split/internal/ffmpeg"
	"github.com/agolikov/silence-split/internal/silence"
	"github.com/agolikov/silence-split/internal/split"
	"github.com/agolikov/silence-split/internal/storage"
)

// Params holds the per-run inputs.
type Params struct {
	Source        string        // path to the source container file
	ChunkDuration time.Duration // segment window length
	NoiseDB       int           // silence noise floor in dB
	MinSilence    time.Duration // shortest silence the filter reports
}

// Pipeline runs the three stages in order against one source file.
type Pipeline struct {
	engine  ffmpeg.Engine
	logger  *slog.Logger
	archive storage.Storage // nil disables archiving
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithArchive sets the archive storage for finished splits.
func WithArchive(s storage.Storage) Option {
	return func(p *Pipeline) {
		p.archive = s
	}
}

// New creates a Pipeline.
func New(engine ffmpeg.Engine, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine: engine,
		logger: logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OutputDir derives the output directory for a source file: a directory
// named after the source's base name, sibling to the source.
func OutputDir(source string) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs))
	return filepath.Join(filepath.Dir(abs), base), nil
}

// Run processes one source file to completion. Each stage finishes before
// the next begins; within a stage each engine call completes before the
// next starts.
func (p *Pipeline) Run(ctx context.Context, params Params) error {
	info, err := p.engine.Probe(ctx, params.Source)
	if err != nil {
		return err
	}
	p.logger.Info("probed source", "source", params.Source, "media", info.String())

	outputDir, err := OutputDir(params.Source)
	if err != nil {
		return err
	}
	p.logger.Info("using output directory", "dir", outputDir)

	p.logger.Info("extracting audio segments for silence detection")
	chunker := chunk.New(p.engine, p.logger)
	segments, err := chunker.Run(ctx, params.Source, outputDir, info.Duration, params.ChunkDuration)
	if err != nil {
		return err
	}

	cache := silence.NewCache(outputDir, params.NoiseDB)
	detector := silence.NewDetector(p.engine, cache, p.logger, params.NoiseDB, params.MinSilence)
	if err := detector.Run(ctx, segments); err != nil {
		return err
	}

	p.logger.Info("splitting source at detected silences")
	silences, err := split.Collect(cache, params.ChunkDuration)
	if err != nil {
		return err
	}
	spans := split.Plan(silences, info.Duration)

	var splitterOpts []split.SplitterOption
	if p.archive != nil {
		splitterOpts = append(splitterOpts, split.WithArchive(p.archive))
	}
	splitter := split.NewSplitter(p.engine, p.logger, splitterOpts...)
	if err := splitter.Run(ctx, params.Source, outputDir, spans, info); err != nil {
		return err
	}

	p.logger.Info("processing completed", "source", params.Source)
	return nil
}
