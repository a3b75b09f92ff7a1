// Package chunk splits a source file's audio track into fixed-duration
// segments, bounding the cost of each downstream silence-detection call.
// Segment files double as a resume cache: a segment that already exists on
// disk is never re-extracted.
package chunk

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/agolikov/silence-split/internal/ffmpeg"
	"github.com/agolikov/silence-split/internal/format"
)

// Segment is one fixed-length window of the source audio.
type Segment struct {
	Index    int           // zero-based position in the source
	Path     string        // segment file location
	Start    time.Duration // source-global start offset
	Duration time.Duration // window length, clamped at end of source
}

// Number returns the one-based segment number used in file names.
func (s Segment) Number() int {
	return s.Index + 1
}

// String returns a human-readable representation for logging.
func (s Segment) String() string {
	return fmt.Sprintf("segment %d: %s+%s",
		s.Number(),
		format.Duration(s.Start),
		format.DurationHuman(s.Duration))
}

// FileName returns the segment file name for a zero-based index.
func FileName(index int) string {
	return fmt.Sprintf("chunk_%d.wav", index+1)
}

// Plan computes the segment layout for a source of the given total duration:
// ceil(total/chunkDuration) segments, segment i covering
// [i*chunkDuration, min((i+1)*chunkDuration, total)).
func Plan(total, chunkDuration time.Duration, outputDir string) []Segment {
	if total <= 0 || chunkDuration <= 0 {
		return nil
	}

	count := int((total + chunkDuration - 1) / chunkDuration)
	segments := make([]Segment, 0, count)
	for i := 0; i < count; i++ {
		start := time.Duration(i) * chunkDuration
		segments = append(segments, Segment{
			Index:    i,
			Path:     filepath.Join(outputDir, FileName(i)),
			Start:    start,
			Duration: min(chunkDuration, total-start),
		})
	}
	return segments
}

// Chunker extracts planned segments to disk.
type Chunker struct {
	engine ffmpeg.Engine
	logger *slog.Logger

	// Injectable dependencies (default to OS implementations).
	statter fileStatter
	dirs    dirMaker
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithFileStatter sets the file statter (used by tests).
func WithFileStatter(s fileStatter) Option {
	return func(c *Chunker) {
		c.statter = s
	}
}

// WithDirMaker sets the directory maker (used by tests).
func WithDirMaker(d dirMaker) Option {
	return func(c *Chunker) {
		c.dirs = d
	}
}

// New creates a Chunker.
func New(engine ffmpeg.Engine, logger *slog.Logger, opts ...Option) *Chunker {
	c := &Chunker{
		engine:  engine,
		logger:  logger,
		statter: osFileStatter{},
		dirs:    osDirMaker{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run extracts every segment of the plan that is not already on disk,
// creating outputDir if absent. Returns the full ordered segment list,
// cached and freshly extracted alike.
func (c *Chunker) Run(ctx context.Context, src, outputDir string, total, chunkDuration time.Duration) ([]Segment, error) {
	if err := c.dirs.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	segments := Plan(total, chunkDuration, outputDir)
	for _, seg := range segments {
		if _, err := c.statter.Stat(seg.Path); err == nil {
			c.logger.Info("segment already exists, skipping extraction", "path", seg.Path)
			continue
		}

		c.logger.Info("extracting segment",
			"path", seg.Path,
			"start", format.Duration(seg.Start))
		if err := c.engine.ExtractChunk(ctx, src, seg.Path, seg.Start, seg.Duration); err != nil {
			return nil, err
		}
	}

	return segments, nil
}
