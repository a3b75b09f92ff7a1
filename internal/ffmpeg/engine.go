// Package ffmpeg wraps the external media engine (ffmpeg/ffprobe) behind a
// narrow interface. Everything the rest of the program needs from the engine
// is one of five operations: probe a container, extract an audio chunk,
// extract an audio range, detect silences, or grab a single frame.
package ffmpeg

import (
	"context"
	"fmt"
	"time"

	"github.com/agolikov/silence-split/internal/format"
)

// MediaInfo describes the streams and container of a probed source file.
type MediaInfo struct {
	Duration   time.Duration // container-level duration
	AudioCodec string        // codec name of the first audio stream
	Container  string        // container format name (first alias)
}

// String returns a human-readable representation for logging.
func (m MediaInfo) String() string {
	return fmt.Sprintf("%s/%s, %s", m.Container, m.AudioCodec, format.Duration(m.Duration))
}

// Interval is a silence interval reported by the engine, in the probed
// file's local time.
type Interval struct {
	Start time.Duration
	End   time.Duration
}

// Duration returns the length of the interval.
func (i Interval) Duration() time.Duration {
	return i.End - i.Start
}

// Engine is the contract with the external media tool. Implementations are
// synchronous: every call blocks until the subprocess exits or ctx is
// cancelled.
type Engine interface {
	// Probe inspects a container file and returns its media info.
	// Returns ErrNoAudioStream if the file has no audio track.
	Probe(ctx context.Context, path string) (MediaInfo, error)

	// ExtractChunk writes [start, start+duration) of src's audio track to
	// dst as 16-bit PCM WAV, dropping any video stream.
	ExtractChunk(ctx context.Context, src, dst string, start, duration time.Duration) error

	// ExtractRange writes [start, end) of src's audio track to dst using
	// the given audio codec and container format.
	ExtractRange(ctx context.Context, src, dst string, start, end time.Duration, codec, container string) error

	// ExtractTail writes [start, end-of-file) of src's audio track to dst
	// using the given audio codec and container format.
	ExtractTail(ctx context.Context, src, dst string, start time.Duration, codec, container string) error

	// DetectSilence runs the engine's silence filter over path and returns
	// the detected intervals in the file's local time, ordered by start.
	DetectSilence(ctx context.Context, path string, noiseDB int, minSilence time.Duration) ([]Interval, error)

	// Snapshot writes a single frame of src taken at the given timestamp
	// to dst (format inferred from the dst extension).
	Snapshot(ctx context.Context, src, dst string, at time.Duration) error
}
