// Package split turns a global silence list into content spans and emits one
// audio file plus one thumbnail per span. Planning is pure interval
// arithmetic; all engine and filesystem work lives in the executor.
package split

import (
	"fmt"
	"time"

	"github.com/agolikov/silence-split/internal/ffmpeg"
	"github.com/agolikov/silence-split/internal/silence"
)

// MinSpanGap is the shortest content span worth emitting. A span shorter
// than this is merged into its neighbor by advancing past the silence that
// would have closed it.
const MinSpanGap = 10 * time.Second

// Span is one planned output: the content between two consecutive silences.
type Span struct {
	Number  int           // one-based output number used in file names
	Start   time.Duration // source-global start
	End     time.Duration // source-global end
	Skipped bool          // merged into a neighbor, no files emitted
	Final   bool          // trailing span running to end of source
}

// Duration returns the span length.
func (s Span) Duration() time.Duration {
	return s.End - s.Start
}

// Midpoint returns the temporal middle of the span, where the thumbnail is
// taken.
func (s Span) Midpoint() time.Duration {
	return s.Start + (s.End-s.Start)/2
}

// Offset translates segment-local intervals to source-global time for the
// given one-based segment number.
func Offset(intervals []ffmpeg.Interval, number int, chunkDuration time.Duration) []ffmpeg.Interval {
	offset := time.Duration(number-1) * chunkDuration
	shifted := make([]ffmpeg.Interval, 0, len(intervals))
	for _, iv := range intervals {
		shifted = append(shifted, ffmpeg.Interval{
			Start: iv.Start + offset,
			End:   iv.End + offset,
		})
	}
	return shifted
}

// Collect loads every sidecar the cache knows about, offsets each segment's
// intervals into source-global time, and concatenates them in segment order.
// No cross-segment sort or merge happens here: segment ordering alone keeps
// the global list time-ordered. A sidecar whose name carries no segment
// number is an error.
func Collect(cache *silence.Cache, chunkDuration time.Duration) ([]ffmpeg.Interval, error) {
	entries, err := cache.Discover()
	if err != nil {
		return nil, err
	}

	var global []ffmpeg.Interval
	for _, entry := range entries {
		if entry.Malformed {
			// No segment number means no place on the global timeline.
			return nil, fmt.Errorf("silence cache %s: no segment number in file name", entry.Path)
		}
		intervals, err := cache.Load(entry.Path)
		if err != nil {
			return nil, err
		}
		global = append(global, Offset(intervals, entry.Number, chunkDuration)...)
	}
	return global, nil
}

// Plan walks the global silence list and computes the content spans.
// Maintains prevEnd starting at zero: a span shorter than MinSpanGap is
// marked Skipped and emits nothing, but still consumes an output number, so
// file numbering keeps gaps where spans were merged. The trailing span
// [prevEnd, total) is always planned, with no guard against prevEnd already
// being at or past total.
func Plan(silences []ffmpeg.Interval, total time.Duration) []Span {
	var spans []Span
	prevEnd := time.Duration(0)
	count := 0

	for _, sil := range silences {
		span := Span{
			Number: count + 1,
			Start:  prevEnd,
			End:    sil.Start,
		}
		if span.Duration() < MinSpanGap {
			span.Skipped = true
		}
		spans = append(spans, span)
		count++
		prevEnd = sil.End
	}

	spans = append(spans, Span{
		Number: count + 1,
		Start:  prevEnd,
		End:    total,
		Final:  true,
	})
	return spans
}
