package silence

import (
	"context"
	"log/slog"
	"time"

	"github.com/agolikov/silence-split/internal/chunk"
	"github.com/agolikov/silence-split/internal/ffmpeg"
)

// Detector runs the engine's silence filter over extracted segments and
// persists results through a Cache. Detection is strictly sequential: one
// segment completes before the next begins.
type Detector struct {
	engine     ffmpeg.Engine
	cache      *Cache
	logger     *slog.Logger
	noiseDB    int
	minSilence time.Duration
}

// NewDetector creates a Detector. noiseDB is the noise floor in dB below
// which audio counts as silence; minSilence is the shortest silence the
// filter reports.
func NewDetector(engine ffmpeg.Engine, cache *Cache, logger *slog.Logger, noiseDB int, minSilence time.Duration) *Detector {
	return &Detector{
		engine:     engine,
		cache:      cache,
		logger:     logger,
		noiseDB:    noiseDB,
		minSilence: minSilence,
	}
}

// Run detects silences in every segment that has no sidecar yet. Segments
// with an existing sidecar are skipped without touching the engine.
func (d *Detector) Run(ctx context.Context, segments []chunk.Segment) error {
	for _, seg := range segments {
		if d.cache.Has(seg.Number()) {
			d.logger.Info("using cached silence data", "segment", seg.Path)
			continue
		}

		d.logger.Info("detecting silence",
			"segment", seg.Path,
			"threshold_db", d.noiseDB)
		intervals, err := d.engine.DetectSilence(ctx, seg.Path, d.noiseDB, d.minSilence)
		if err != nil {
			return err
		}

		if err := d.cache.Store(seg.Number(), intervals); err != nil {
			return err
		}
		d.logger.Info("silence detection complete",
			"segment", seg.Path,
			"intervals", len(intervals))
	}
	return nil
}
